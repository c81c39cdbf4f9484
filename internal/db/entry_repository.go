package db

import (
	"time"

	"github.com/terraincognita07/symptomap/internal/models"
	"gorm.io/gorm"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

// entrySymptomRow resolves one junction row to its symptom name.
type entrySymptomRow struct {
	EntryID uint   `gorm:"column:entry_id"`
	ID      uint   `gorm:"column:id"`
	Name    string `gorm:"column:name"`
}

func (repo *EntryRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.SymptomEntry, bool, error) {
	entry := models.SymptomEntry{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.SymptomEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.SymptomEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *EntryRepository) Create(entry *models.SymptomEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *EntryRepository) ListByUser(userID uint) ([]models.SymptomEntry, error) {
	entries := make([]models.SymptomEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceSymptoms swaps the entry's association set for exactly symptomIDs
// and stamps the entry as modified, all inside one transaction. A reader
// never observes the cleared state without the new rows.
func (repo *EntryRepository) ReplaceSymptoms(entry *models.SymptomEntry, symptomIDs []uint) error {
	now := time.Now().UTC()
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&models.EntrySymptom{}).Error; err != nil {
			return err
		}

		if len(symptomIDs) > 0 {
			links := make([]models.EntrySymptom, 0, len(symptomIDs))
			for _, symptomID := range symptomIDs {
				links = append(links, models.EntrySymptom{EntryID: entry.ID, SymptomID: symptomID})
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.SymptomEntry{}).
			Where("id = ?", entry.ID).
			Update("updated_at", now).Error; err != nil {
			return err
		}
		entry.UpdatedAt = now
		return nil
	})
}

// ListSymptomsForEntries resolves symptom names for a batch of entries,
// name ascending within each entry.
func (repo *EntryRepository) ListSymptomsForEntries(entryIDs []uint) (map[uint][]models.Symptom, error) {
	resolved := make(map[uint][]models.Symptom, len(entryIDs))
	if len(entryIDs) == 0 {
		return resolved, nil
	}

	rows := make([]entrySymptomRow, 0)
	if err := repo.database.
		Table("entry_symptoms").
		Select("entry_symptoms.entry_id AS entry_id, symptoms.id AS id, symptoms.name AS name").
		Joins("JOIN symptoms ON symptoms.id = entry_symptoms.symptom_id").
		Where("entry_symptoms.entry_id IN ?", entryIDs).
		Order("symptoms.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		resolved[row.EntryID] = append(resolved[row.EntryID], models.Symptom{ID: row.ID, Name: row.Name})
	}
	return resolved, nil
}

// ListRecentWithLocation returns entries last modified at or after cutoff
// whose owner has both coordinates set.
func (repo *EntryRepository) ListRecentWithLocation(cutoff time.Time) ([]models.LocatedEntry, error) {
	rows := make([]models.LocatedEntry, 0)
	if err := repo.database.
		Table("symptom_entries").
		Select("symptom_entries.id AS id, symptom_entries.user_id AS user_id, symptom_entries.date AS date, symptom_entries.updated_at AS updated_at, users.latitude AS latitude, users.longitude AS longitude").
		Joins("JOIN users ON users.id = symptom_entries.user_id").
		Where("symptom_entries.updated_at >= ?", cutoff).
		Where("users.latitude IS NOT NULL AND users.longitude IS NOT NULL").
		Order("symptom_entries.updated_at ASC, symptom_entries.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

