// Package cache stores computed resolutions keyed by ZIP code and option
// flags, so identical requests inside the TTL window never re-run the
// pipeline.
package cache

import (
	"context"
	"time"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
)

// Key builds the cache key for one (zip, options) request. Option flags are
// part of the key because they change the payload shape.
func Key(zip string, opts models.Options) string {
	return zip + ":" + opts.Signature()
}

// Store is a TTL cache of resolutions. Get returns sentinel.ErrNotFound on
// a miss and sentinel.ErrExpired when the entry exists but its TTL lapsed.
type Store interface {
	Get(ctx context.Context, key string) (*models.Resolution, error)
	Set(ctx context.Context, key string, res *models.Resolution, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// InvalidateTier removes every cached resolution that carries
	// representatives from the given tier, returning how many were dropped.
	InvalidateTier(ctx context.Context, tier domain.Level) (int, error)
}

// resolutionHasTier reports whether a cached resolution carries any
// representative sourced from the given tier.
func resolutionHasTier(res *models.Resolution, tier domain.Level) bool {
	if res == nil {
		return false
	}
	for _, rep := range res.Aggregation.Representatives {
		if rep.SourceTier == tier {
			return true
		}
	}
	return false
}
