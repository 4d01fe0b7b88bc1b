package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"civiscope/internal/cache/metrics"
	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
	"civiscope/pkg/platform/sentinel"
)

// Redis key prefix for cached resolutions
const resolutionKeyPrefix = "civiscope:resolution:"

// RedisStore is a Redis-backed resolution cache for deployments where
// multiple instances share one cache. Expiry rides on Redis TTLs, so there
// is no sweeper and Get never reports sentinel.ErrExpired.
type RedisStore struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisMetrics sets the cache metrics collectors.
func WithRedisMetrics(m *metrics.Metrics) RedisStoreOption {
	return func(s *RedisStore) {
		s.metrics = m
	}
}

// NewRedisStore creates a Redis-backed resolution cache.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("cache.NewRedisStore: redis client is required")
	}
	s := &RedisStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.Resolution, error) {
	payload, err := s.client.Get(ctx, resolutionKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.metrics.IncrementLookup("miss")
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		s.metrics.IncrementLookup("error")
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var res models.Resolution
	if err := json.Unmarshal(payload, &res); err != nil {
		s.metrics.IncrementLookup("error")
		return nil, fmt.Errorf("decode cached resolution: %w", err)
	}
	s.metrics.IncrementLookup("hit")
	return &res, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, res *models.Resolution, ttl time.Duration) error {
	if res == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}
	return s.client.Set(ctx, resolutionKeyPrefix+key, payload, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, resolutionKeyPrefix+key).Err()
}

// InvalidateTier scans the resolution keyspace, decoding each entry and
// deleting those that carry the given tier.
func (s *RedisStore) InvalidateTier(ctx context.Context, tier domain.Level) (int, error) {
	dropped := 0
	iter := s.client.Scan(ctx, 0, resolutionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		payload, err := s.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return dropped, fmt.Errorf("redis get during invalidation: %w", err)
		}

		var res models.Resolution
		if err := json.Unmarshal(payload, &res); err != nil {
			// Undecodable entries are garbage; drop them too.
			if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
				return dropped, fmt.Errorf("redis del during invalidation: %w", delErr)
			}
			dropped++
			continue
		}
		if !resolutionHasTier(&res, tier) {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return dropped, fmt.Errorf("redis del during invalidation: %w", err)
		}
		dropped++
	}
	if err := iter.Err(); err != nil {
		return dropped, fmt.Errorf("redis scan: %w", err)
	}
	s.metrics.AddInvalidations(dropped)
	return dropped, nil
}
