package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/symptomap/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEntryRace = errors.New("duplicate entry race")
	ErrEntryLoadFailed    = errors.New("load entry failed")
	ErrEntryCreateFailed  = errors.New("create entry failed")
	ErrEntryReplaceFailed = errors.New("replace entry symptoms failed")
	ErrEntryResolveFailed = errors.New("resolve entry symptoms failed")
)

type EntryStore interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.SymptomEntry, bool, error)
	Create(entry *models.SymptomEntry) error
	ListByUser(userID uint) ([]models.SymptomEntry, error)
	ReplaceSymptoms(entry *models.SymptomEntry, symptomIDs []uint) error
	ListSymptomsForEntries(entryIDs []uint) (map[uint][]models.Symptom, error)
}

type SymptomIDValidator interface {
	ValidateIDs(ids []uint) ([]uint, error)
}

type EntryService struct {
	entries EntryStore
	catalog SymptomIDValidator
	now     func() time.Time
}

// EntryWithSymptoms is an entry together with its resolved catalog
// symptoms, name ascending.
type EntryWithSymptoms struct {
	Entry    models.SymptomEntry
	Symptoms []models.Symptom
}

func NewEntryService(entries EntryStore, catalog SymptomIDValidator) *EntryService {
	return &EntryService{
		entries: entries,
		catalog: catalog,
		now:     time.Now,
	}
}

// SubmitEntry records the user's symptom set for one UTC day. An empty
// rawDate means "now". The day's entry is found or created under the
// (user, day) uniqueness constraint and its association set is replaced
// wholesale; an empty symptomIDs set is a valid submission meaning
// "explicitly no symptoms".
//
// Validation happens before any write, so an invalid submission leaves a
// pre-existing association set untouched.
func (service *EntryService) SubmitEntry(userID uint, rawDate string, symptomIDs []uint) (EntryWithSymptoms, error) {
	instant := service.now()
	if strings.TrimSpace(rawDate) != "" {
		parsed, err := ParseDayInput(rawDate)
		if err != nil {
			return EntryWithSymptoms{}, err
		}
		instant = parsed
	}
	dayStart, dayEnd := DayRangeUTC(instant)

	cleanIDs, err := service.catalog.ValidateIDs(symptomIDs)
	if err != nil {
		return EntryWithSymptoms{}, err
	}

	entry, err := service.findOrCreateEntry(userID, dayStart, dayEnd)
	if err != nil {
		return EntryWithSymptoms{}, err
	}

	if err := service.entries.ReplaceSymptoms(&entry, cleanIDs); err != nil {
		return EntryWithSymptoms{}, fmt.Errorf("%w: %v", ErrEntryReplaceFailed, err)
	}

	resolved, err := service.resolveSymptoms([]uint{entry.ID})
	if err != nil {
		return EntryWithSymptoms{}, err
	}
	return EntryWithSymptoms{Entry: entry, Symptoms: resolved[entry.ID]}, nil
}

// findOrCreateEntry inserts first and falls back to the existing row on a
// uniqueness violation: a concurrent submission that won the insert is
// observed and updated rather than duplicated. The fallback runs once; a
// violation with no visible row is surfaced as a transient race.
func (service *EntryService) findOrCreateEntry(userID uint, dayStart time.Time, dayEnd time.Time) (models.SymptomEntry, error) {
	entry, found, err := service.entries.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.SymptomEntry{}, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	if found {
		return entry, nil
	}

	entry = models.SymptomEntry{UserID: userID, Date: dayStart}
	createErr := service.entries.Create(&entry)
	if createErr == nil {
		return entry, nil
	}
	if !isDuplicateEntryError(createErr) {
		return models.SymptomEntry{}, fmt.Errorf("%w: %v", ErrEntryCreateFailed, createErr)
	}

	entry, found, err = service.entries.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.SymptomEntry{}, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	if !found {
		return models.SymptomEntry{}, ErrDuplicateEntryRace
	}
	return entry, nil
}

// ListEntries returns the user's full history, day key descending, with
// resolved symptom names.
func (service *EntryService) ListEntries(userID uint) ([]EntryWithSymptoms, error) {
	entries, err := service.entries.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}

	entryIDs := make([]uint, 0, len(entries))
	for _, entry := range entries {
		entryIDs = append(entryIDs, entry.ID)
	}
	resolved, err := service.resolveSymptoms(entryIDs)
	if err != nil {
		return nil, err
	}

	history := make([]EntryWithSymptoms, 0, len(entries))
	for _, entry := range entries {
		symptoms := resolved[entry.ID]
		if symptoms == nil {
			symptoms = []models.Symptom{}
		}
		history = append(history, EntryWithSymptoms{Entry: entry, Symptoms: symptoms})
	}
	return history, nil
}

// GetEntryForDate looks up the single entry for the date's UTC day. The
// found flag distinguishes "no entry" from "entry with an empty symptom
// set"; callers must not conflate the two.
func (service *EntryService) GetEntryForDate(userID uint, rawDate string) (EntryWithSymptoms, bool, error) {
	parsed, err := ParseDayInput(rawDate)
	if err != nil {
		return EntryWithSymptoms{}, false, err
	}
	dayStart, dayEnd := DayRangeUTC(parsed)

	entry, found, err := service.entries.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return EntryWithSymptoms{}, false, fmt.Errorf("%w: %v", ErrEntryLoadFailed, err)
	}
	if !found {
		return EntryWithSymptoms{}, false, nil
	}

	resolved, err := service.resolveSymptoms([]uint{entry.ID})
	if err != nil {
		return EntryWithSymptoms{}, false, err
	}
	symptoms := resolved[entry.ID]
	if symptoms == nil {
		symptoms = []models.Symptom{}
	}
	return EntryWithSymptoms{Entry: entry, Symptoms: symptoms}, true, nil
}

func (service *EntryService) resolveSymptoms(entryIDs []uint) (map[uint][]models.Symptom, error) {
	resolved, err := service.entries.ListSymptomsForEntries(entryIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryResolveFailed, err)
	}
	for entryID, symptoms := range resolved {
		if symptoms == nil {
			resolved[entryID] = []models.Symptom{}
		}
	}
	return resolved, nil
}

func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
