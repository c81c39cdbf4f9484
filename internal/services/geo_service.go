package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/symptomap/internal/models"
)

const DefaultAggregateWindowHours = 24

var ErrAggregateScanFailed = errors.New("aggregate scan failed")

type GeoEntrySource interface {
	ListRecentWithLocation(cutoff time.Time) ([]models.LocatedEntry, error)
	ListSymptomsForEntries(entryIDs []uint) (map[uint][]models.Symptom, error)
}

type GeoService struct {
	entries GeoEntrySource
	now     func() time.Time
}

// GeoLocation is one contributing entry's coordinate pair with the
// resolved symptom names for that entry. Points are not deduplicated or
// clustered here; that belongs to the presentation layer.
type GeoLocation struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Symptoms  []string `json:"symptoms"`
}

type GeoSummary struct {
	TotalEntries  int            `json:"totalEntries"`
	SymptomCounts map[string]int `json:"symptomCounts"`
	Locations     []GeoLocation  `json:"locations"`
}

func NewGeoService(entries GeoEntrySource) *GeoService {
	return &GeoService{entries: entries, now: time.Now}
}

// AggregateRecent summarizes entries last modified within the rolling
// window whose owner has a known location. The window is closed at the
// lower bound (updated_at >= now − window) and runs up to the scan
// instant. Each entry contributes once to TotalEntries and at most once
// per symptom to SymptomCounts; an entry with an explicitly empty symptom
// set still counts and still appears in Locations with an empty list.
func (service *GeoService) AggregateRecent(windowHours int) (GeoSummary, error) {
	if windowHours <= 0 {
		windowHours = DefaultAggregateWindowHours
	}
	cutoff := service.now().Add(-time.Duration(windowHours) * time.Hour)

	recent, err := service.entries.ListRecentWithLocation(cutoff)
	if err != nil {
		return GeoSummary{}, fmt.Errorf("%w: %v", ErrAggregateScanFailed, err)
	}

	entryIDs := make([]uint, 0, len(recent))
	for _, located := range recent {
		entryIDs = append(entryIDs, located.EntryID)
	}
	resolved, err := service.entries.ListSymptomsForEntries(entryIDs)
	if err != nil {
		return GeoSummary{}, fmt.Errorf("%w: %v", ErrAggregateScanFailed, err)
	}

	summary := GeoSummary{
		TotalEntries:  len(recent),
		SymptomCounts: make(map[string]int),
		Locations:     make([]GeoLocation, 0, len(recent)),
	}
	for _, located := range recent {
		names := make([]string, 0, len(resolved[located.EntryID]))
		for _, symptom := range resolved[located.EntryID] {
			names = append(names, symptom.Name)
			summary.SymptomCounts[symptom.Name]++
		}
		summary.Locations = append(summary.Locations, GeoLocation{
			Latitude:  located.Latitude,
			Longitude: located.Longitude,
			Symptoms:  names,
		})
	}
	return summary, nil
}
