package store

import (
	"context"
	"sync"

	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	"civiscope/pkg/platform/sentinel"
)

// InMemoryBoundaryStore implements jurisdiction.BoundaryStore over a seeded
// map. It is the default backend and the test double; production deployments
// point at the PostgreSQL store instead.
type InMemoryBoundaryStore struct {
	mu      sync.RWMutex
	records map[string]jurisdiction.BoundaryRecord
}

// NewInMemory creates a boundary store seeded with the bundled registry data.
func NewInMemory() *InMemoryBoundaryStore {
	s := &InMemoryBoundaryStore{records: make(map[string]jurisdiction.BoundaryRecord, len(seedRecords))}
	for _, rec := range seedRecords {
		s.records[rec.ZipCode] = rec
	}
	return s
}

// NewInMemoryEmpty creates an unseeded store for tests that control contents.
func NewInMemoryEmpty() *InMemoryBoundaryStore {
	return &InMemoryBoundaryStore{records: make(map[string]jurisdiction.BoundaryRecord)}
}

// FindByZip retrieves the boundary record covering zip.
// Returns sentinel.ErrNotFound when the registry has no record.
func (s *InMemoryBoundaryStore) FindByZip(_ context.Context, zip string) (*jurisdiction.BoundaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[zip]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &rec, nil
}

// Put inserts or replaces a boundary record.
func (s *InMemoryBoundaryStore) Put(_ context.Context, rec jurisdiction.BoundaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ZipCode] = rec
	return nil
}

// seedRecords mirrors the curated boundary registry shipped with the engine.
var seedRecords = []jurisdiction.BoundaryRecord{
	{
		ZipCode:            "90210",
		JurisdictionType:   jurisdiction.TypeIncorporatedCity,
		Name:               "City of Beverly Hills",
		County:             "Los Angeles",
		HasLocalGovernment: true,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
		Confidence:         0.92,
	},
	{
		ZipCode:            "10001",
		JurisdictionType:   jurisdiction.TypeIncorporatedCity,
		Name:               "City of New York",
		County:             "New York",
		HasLocalGovernment: true,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
		Confidence:         0.95,
	},
	{
		ZipCode:            "60601",
		JurisdictionType:   jurisdiction.TypeIncorporatedCity,
		Name:               "City of Chicago",
		County:             "Cook",
		HasLocalGovernment: true,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
		Confidence:         0.94,
	},
	{
		ZipCode:            "92004",
		JurisdictionType:   jurisdiction.TypeCensusDesignatedPlace,
		Name:               "Borrego Springs CDP",
		County:             "San Diego",
		HasLocalGovernment: false,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState},
		Confidence:         0.88,
	},
	{
		ZipCode:            "89049",
		JurisdictionType:   jurisdiction.TypeUnincorporatedArea,
		Name:               "Unincorporated Nye County",
		County:             "Nye",
		HasLocalGovernment: false,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState},
		Confidence:         0.85,
	},
	{
		ZipCode:            "33109",
		JurisdictionType:   jurisdiction.TypeSpecialDistrict,
		Name:               "Fisher Island District",
		County:             "Miami-Dade",
		HasLocalGovernment: true,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
		Confidence:         0.83,
	},
}
