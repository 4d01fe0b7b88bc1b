package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	"civiscope/pkg/platform/sentinel"
)

// PostgresBoundaryStore persists boundary records in PostgreSQL.
type PostgresBoundaryStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed boundary store.
func NewPostgres(pool *pgxpool.Pool) *PostgresBoundaryStore {
	return &PostgresBoundaryStore{pool: pool}
}

// Schema creates the boundary table if it does not exist. Called from main at
// startup; migrations proper are out of scope for this engine.
func (s *PostgresBoundaryStore) Schema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jurisdiction_boundaries (
			zip_code             TEXT PRIMARY KEY,
			jurisdiction_type    TEXT NOT NULL,
			name                 TEXT NOT NULL,
			county               TEXT NOT NULL,
			has_local_government BOOLEAN NOT NULL,
			levels               TEXT[] NOT NULL,
			confidence           DOUBLE PRECISION NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create jurisdiction_boundaries: %w", err)
	}
	return nil
}

// FindByZip retrieves the boundary record covering zip.
// Returns sentinel.ErrNotFound when no record exists.
func (s *PostgresBoundaryStore) FindByZip(ctx context.Context, zip string) (*jurisdiction.BoundaryRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT zip_code, jurisdiction_type, name, county, has_local_government, levels, confidence
		FROM jurisdiction_boundaries
		WHERE zip_code = $1`, zip)

	var rec jurisdiction.BoundaryRecord
	var jType string
	var levels []string
	err := row.Scan(&rec.ZipCode, &jType, &rec.Name, &rec.County, &rec.HasLocalGovernment, &levels, &rec.Confidence)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find boundary by zip: %w", err)
	}

	rec.JurisdictionType = jurisdiction.Type(jType)
	rec.Levels = make([]domain.Level, 0, len(levels))
	for _, l := range levels {
		rec.Levels = append(rec.Levels, domain.Level(l))
	}
	return &rec, nil
}

// Put inserts or replaces a boundary record.
func (s *PostgresBoundaryStore) Put(ctx context.Context, rec jurisdiction.BoundaryRecord) error {
	levels := make([]string, 0, len(rec.Levels))
	for _, l := range rec.Levels {
		levels = append(levels, l.String())
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO jurisdiction_boundaries
			(zip_code, jurisdiction_type, name, county, has_local_government, levels, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (zip_code) DO UPDATE SET
			jurisdiction_type    = EXCLUDED.jurisdiction_type,
			name                 = EXCLUDED.name,
			county               = EXCLUDED.county,
			has_local_government = EXCLUDED.has_local_government,
			levels               = EXCLUDED.levels,
			confidence           = EXCLUDED.confidence`,
		rec.ZipCode, string(rec.JurisdictionType), rec.Name, rec.County,
		rec.HasLocalGovernment, levels, rec.Confidence)
	if err != nil {
		return fmt.Errorf("upsert boundary: %w", err)
	}
	return nil
}
