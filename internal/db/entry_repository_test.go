package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/symptomap/internal/models"
	"gorm.io/gorm"
)

func TestEntryCreateEnforcesOneRowPerUserPerDay(t *testing.T) {
	database := openDatabaseForTest(t)
	user := createUserForTest(t, database, "alice", nil, nil)
	day := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)

	createEntryForTest(t, database, user.ID, day)

	duplicate := models.SymptomEntry{UserID: user.ID, Date: day}
	err := NewEntryRepository(database).Create(&duplicate)
	if err == nil {
		t.Fatal("expected a second entry for the same user and day to be rejected")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) && !strings.Contains(err.Error(), "UNIQUE constraint failed") {
		t.Fatalf("expected a uniqueness violation, got %v", err)
	}

	otherDay := day.AddDate(0, 0, 1)
	createEntryForTest(t, database, user.ID, otherDay)
	otherUser := createUserForTest(t, database, "bob", nil, nil)
	createEntryForTest(t, database, otherUser.ID, day)
}

func TestFindByUserAndDayRangeUsesHalfOpenBounds(t *testing.T) {
	database := openDatabaseForTest(t)
	repo := NewEntryRepository(database)
	user := createUserForTest(t, database, "alice", nil, nil)
	day := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	entry := createEntryForTest(t, database, user.ID, day)

	found, exists, err := repo.FindByUserAndDayRange(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("FindByUserAndDayRange() unexpected error: %v", err)
	}
	if !exists || found.ID != entry.ID {
		t.Fatalf("expected to find entry %d, got exists=%v id=%d", entry.ID, exists, found.ID)
	}

	if _, exists, err = repo.FindByUserAndDayRange(user.ID, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("FindByUserAndDayRange() unexpected error: %v", err)
	} else if exists {
		t.Fatal("expected no entry on the following day")
	}

	if _, exists, err = repo.FindByUserAndDayRange(user.ID+1, day, day.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("FindByUserAndDayRange() unexpected error: %v", err)
	} else if exists {
		t.Fatal("expected no entry for another user")
	}
}

func TestReplaceSymptomsSwapsSetAndStampsUpdatedAt(t *testing.T) {
	database := openDatabaseForTest(t)
	repo := NewEntryRepository(database)
	user := createUserForTest(t, database, "alice", nil, nil)
	idsByName := seedCatalogForTest(t, database, "Fever", "Coughing", "Headache")
	day := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	entry := createEntryForTest(t, database, user.ID, day)

	if err := repo.ReplaceSymptoms(&entry, []uint{idsByName["Fever"], idsByName["Coughing"]}); err != nil {
		t.Fatalf("ReplaceSymptoms() unexpected error: %v", err)
	}
	firstStamp := entry.UpdatedAt

	resolved, err := repo.ListSymptomsForEntries([]uint{entry.ID})
	if err != nil {
		t.Fatalf("ListSymptomsForEntries() unexpected error: %v", err)
	}
	names := symptomNames(resolved[entry.ID])
	if len(names) != 2 || names[0] != "Coughing" || names[1] != "Fever" {
		t.Fatalf("expected [Coughing Fever], got %v", names)
	}

	time.Sleep(5 * time.Millisecond)
	if err := repo.ReplaceSymptoms(&entry, []uint{idsByName["Headache"]}); err != nil {
		t.Fatalf("ReplaceSymptoms() unexpected error: %v", err)
	}
	if !entry.UpdatedAt.After(firstStamp) {
		t.Fatalf("expected updated_at to advance, got %v then %v", firstStamp, entry.UpdatedAt)
	}

	resolved, err = repo.ListSymptomsForEntries([]uint{entry.ID})
	if err != nil {
		t.Fatalf("ListSymptomsForEntries() unexpected error: %v", err)
	}
	names = symptomNames(resolved[entry.ID])
	if len(names) != 1 || names[0] != "Headache" {
		t.Fatalf("expected the prior set to be fully replaced, got %v", names)
	}

	if err := repo.ReplaceSymptoms(&entry, nil); err != nil {
		t.Fatalf("ReplaceSymptoms() with empty set unexpected error: %v", err)
	}
	resolved, err = repo.ListSymptomsForEntries([]uint{entry.ID})
	if err != nil {
		t.Fatalf("ListSymptomsForEntries() unexpected error: %v", err)
	}
	if len(resolved[entry.ID]) != 0 {
		t.Fatalf("expected an empty set, got %v", symptomNames(resolved[entry.ID]))
	}
}

func TestListByUserReturnsNewestDayFirst(t *testing.T) {
	database := openDatabaseForTest(t)
	repo := NewEntryRepository(database)
	user := createUserForTest(t, database, "alice", nil, nil)

	days := []time.Time{
		time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		createEntryForTest(t, database, user.ID, day)
	}

	entries, err := repo.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser() unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Fatalf("expected date-descending order, got %v before %v", entries[i-1].Date, entries[i].Date)
		}
	}
}

func TestListRecentWithLocationFiltersByWindowAndOwnerLocation(t *testing.T) {
	database := openDatabaseForTest(t)
	repo := NewEntryRepository(database)

	latitude, longitude := 40.7, -74.0
	located := createUserForTest(t, database, "located", &latitude, &longitude)
	unlocated := createUserForTest(t, database, "unlocated", nil, nil)
	halfLocated := createUserForTest(t, database, "halflocated", &latitude, nil)

	day := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	fresh := createEntryForTest(t, database, located.ID, day)
	stale := createEntryForTest(t, database, located.ID, day.AddDate(0, 0, -3))
	createEntryForTest(t, database, unlocated.ID, day)
	createEntryForTest(t, database, halfLocated.ID, day)

	staleStamp := time.Now().UTC().Add(-48 * time.Hour)
	if err := database.Model(&models.SymptomEntry{}).
		Where("id = ?", stale.ID).
		Update("updated_at", staleStamp).Error; err != nil {
		t.Fatalf("backdate stale entry: %v", err)
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	recent, err := repo.ListRecentWithLocation(cutoff)
	if err != nil {
		t.Fatalf("ListRecentWithLocation() unexpected error: %v", err)
	}

	if len(recent) != 1 {
		t.Fatalf("expected one qualifying entry, got %d (%+v)", len(recent), recent)
	}
	if recent[0].EntryID != fresh.ID || recent[0].UserID != located.ID {
		t.Fatalf("expected entry %d for user %d, got entry %d for user %d",
			fresh.ID, located.ID, recent[0].EntryID, recent[0].UserID)
	}
	if recent[0].Latitude != latitude || recent[0].Longitude != longitude {
		t.Fatalf("expected owner coordinates %v/%v, got %v/%v",
			latitude, longitude, recent[0].Latitude, recent[0].Longitude)
	}
}

func symptomNames(symptoms []models.Symptom) []string {
	names := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		names = append(names, symptom.Name)
	}
	return names
}
