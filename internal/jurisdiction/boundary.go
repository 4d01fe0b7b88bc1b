package jurisdiction

import (
	"context"
	"fmt"

	"civiscope/internal/domain"
	"civiscope/internal/location"
)

// BoundaryRecord is one curated boundary registry row, keyed by ZIP code.
type BoundaryRecord struct {
	ZipCode            string
	JurisdictionType   Type
	Name               string
	County             string
	HasLocalGovernment bool
	Levels             []domain.Level
	Confidence         float64
}

// BoundaryStore provides read access to the boundary registry. Swap with
// concrete storage without touching the classifier. Implementations return
// sentinel.ErrNotFound when no record covers the ZIP code.
type BoundaryStore interface {
	FindByZip(ctx context.Context, zip string) (*BoundaryRecord, error)
}

// BoundarySource classifies via the authoritative boundary registry.
type BoundarySource struct {
	store BoundaryStore
}

// NewBoundarySource builds the authoritative classification source.
func NewBoundarySource(store BoundaryStore) (*BoundarySource, error) {
	if store == nil {
		return nil, fmt.Errorf("boundary store is required")
	}
	return &BoundarySource{store: store}, nil
}

func (s *BoundarySource) Name() string { return "boundary_registry" }

func (s *BoundarySource) Reliability() Reliability { return ReliabilityAuthoritative }

// Detect answers from the boundary registry. A missing record propagates
// sentinel.ErrNotFound so the classifier falls through to the next source.
func (s *BoundarySource) Detect(ctx context.Context, loc *location.Data) (*DetectionResult, error) {
	rec, err := s.store.FindByZip(ctx, loc.ZipCode)
	if err != nil {
		return nil, err
	}

	return NewDetectionResult(
		rec.JurisdictionType,
		rec.Levels,
		rec.HasLocalGovernment,
		clampConfidence(s.Reliability(), rec.Confidence),
		s.Name(),
		rec.County,
		rec.Name,
	), nil
}
