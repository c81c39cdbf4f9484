package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/terraincognita07/symptomap/internal/models"
)

// UnknownSymptomError reports every requested id missing from the catalog,
// so the caller can reject the whole submission with the offending ids.
type UnknownSymptomError struct {
	IDs []uint
}

func (err *UnknownSymptomError) Error() string {
	return fmt.Sprintf("unknown symptom ids: %v", err.IDs)
}

type CatalogSymptomRepository interface {
	ListAll() ([]models.Symptom, error)
	ReplaceAll(names []string) error
}

// CatalogService serves the symptom catalog from memory. The catalog is
// loaded at most once per process lifetime and refreshed only through an
// explicit Reseed or Reload; normal request handling never re-reads it.
type CatalogService struct {
	symptoms CatalogSymptomRepository

	mu     sync.RWMutex
	loaded bool
	sorted []models.Symptom
	byID   map[uint]models.Symptom
}

func NewCatalogService(symptoms CatalogSymptomRepository) *CatalogService {
	return &CatalogService{symptoms: symptoms}
}

// ListSymptoms returns the full catalog, name ascending.
func (service *CatalogService) ListSymptoms() ([]models.Symptom, error) {
	if err := service.ensureLoaded(); err != nil {
		return nil, err
	}

	service.mu.RLock()
	defer service.mu.RUnlock()
	listed := make([]models.Symptom, len(service.sorted))
	copy(listed, service.sorted)
	return listed, nil
}

// ValidateIDs deduplicates ids and checks every one against the catalog.
// Unknown ids fail the whole set with an UnknownSymptomError; nothing is
// ever partially accepted. The returned slice is de-duplicated and sorted.
func (service *CatalogService) ValidateIDs(ids []uint) ([]uint, error) {
	if err := service.ensureLoaded(); err != nil {
		return nil, err
	}

	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	service.mu.RLock()
	missing := make([]uint, 0)
	for id := range unique {
		if _, known := service.byID[id]; !known {
			missing = append(missing, id)
		}
	}
	service.mu.RUnlock()

	if len(missing) > 0 {
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &UnknownSymptomError{IDs: missing}
	}

	validated := make([]uint, 0, len(unique))
	for id := range unique {
		validated = append(validated, id)
	}
	sort.Slice(validated, func(i, j int) bool { return validated[i] < validated[j] })
	return validated, nil
}

// Reseed replaces the persisted catalog with names and refreshes the
// in-memory copy.
func (service *CatalogService) Reseed(names []string) error {
	if err := service.symptoms.ReplaceAll(names); err != nil {
		return err
	}
	return service.Reload()
}

// Reload re-reads the catalog from storage.
func (service *CatalogService) Reload() error {
	listed, err := service.symptoms.ListAll()
	if err != nil {
		return err
	}

	byID := make(map[uint]models.Symptom, len(listed))
	for _, symptom := range listed {
		byID[symptom.ID] = symptom
	}

	service.mu.Lock()
	service.sorted = listed
	service.byID = byID
	service.loaded = true
	service.mu.Unlock()
	return nil
}

func (service *CatalogService) ensureLoaded() error {
	service.mu.RLock()
	loaded := service.loaded
	service.mu.RUnlock()
	if loaded {
		return nil
	}
	return service.Reload()
}
