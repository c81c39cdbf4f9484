package db

import (
	"github.com/terraincognita07/symptomap/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) ListAll() ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := repo.database.Order("name ASC").Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

// ReplaceAll wipes the catalog and loads names in their place. Junction
// rows referencing removed symptoms go with them. Used only by the
// seeding CLI; the running service treats the catalog as read-only.
func (repo *SymptomRepository) ReplaceAll(names []string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.EntrySymptom{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Symptom{}).Error; err != nil {
			return err
		}

		if len(names) == 0 {
			return nil
		}
		symptoms := make([]models.Symptom, 0, len(names))
		for _, name := range names {
			symptoms = append(symptoms, models.Symptom{Name: name})
		}
		return tx.Create(&symptoms).Error
	})
}
