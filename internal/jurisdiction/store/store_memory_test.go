package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	"civiscope/pkg/platform/sentinel"
)

func TestInMemoryBoundaryStore_SeededLookup(t *testing.T) {
	s := NewInMemory()

	rec, err := s.FindByZip(context.Background(), "90210")
	require.NoError(t, err)
	assert.Equal(t, jurisdiction.TypeIncorporatedCity, rec.JurisdictionType)
	assert.True(t, rec.HasLocalGovernment)
	assert.GreaterOrEqual(t, rec.Confidence, 0.8)
}

func TestInMemoryBoundaryStore_Miss(t *testing.T) {
	s := NewInMemory()

	_, err := s.FindByZip(context.Background(), "00000")
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestInMemoryBoundaryStore_PutReplaces(t *testing.T) {
	s := NewInMemoryEmpty()
	ctx := context.Background()

	rec := jurisdiction.BoundaryRecord{
		ZipCode:            "12345",
		JurisdictionType:   jurisdiction.TypeSpecialDistrict,
		Name:               "Test District",
		County:             "Test",
		HasLocalGovernment: true,
		Levels:             []domain.Level{domain.LevelFederal, domain.LevelState, domain.LevelLocal},
		Confidence:         0.9,
	}
	require.NoError(t, s.Put(ctx, rec))

	found, err := s.FindByZip(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, jurisdiction.TypeSpecialDistrict, found.JurisdictionType)

	rec.JurisdictionType = jurisdiction.TypeIncorporatedCity
	require.NoError(t, s.Put(ctx, rec))

	found, err = s.FindByZip(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, jurisdiction.TypeIncorporatedCity, found.JurisdictionType)
}

func TestInMemoryBoundaryStore_ReturnsCopy(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	first, err := s.FindByZip(ctx, "90210")
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := s.FindByZip(ctx, "90210")
	require.NoError(t, err)
	assert.Equal(t, "City of Beverly Hills", second.Name)
}
