package cache

import (
	"context"
	"sync"
	"time"

	"civiscope/internal/cache/metrics"
	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
	"civiscope/pkg/platform/sentinel"
)

type cachedResolution struct {
	res      models.Resolution
	storedAt time.Time
	ttl      time.Duration
}

func (c cachedResolution) expired(now time.Time) bool {
	return now.Sub(c.storedAt) >= c.ttl
}

// MemoryStore is an in-memory TTL cache of resolutions. A background
// sweeper drops lapsed entries so the map does not grow without bound
// between reads.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cachedResolution
	metrics *metrics.Metrics

	stop     chan struct{}
	stopOnce sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithMemoryMetrics sets the cache metrics collectors.
func WithMemoryMetrics(m *metrics.Metrics) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.metrics = m
	}
}

// NewMemoryStore creates an in-memory cache. A sweepInterval of zero
// disables the background sweeper; expired entries are then only dropped
// when read.
func NewMemoryStore(sweepInterval time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]cachedResolution),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if sweepInterval > 0 {
		go s.sweep(sweepInterval)
	}
	return s
}

// Close stops the background sweeper.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.Resolution, error) {
	s.mu.RLock()
	cached, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		s.metrics.IncrementLookup("miss")
		return nil, sentinel.ErrNotFound
	}
	if cached.expired(time.Now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		s.metrics.IncrementLookup("expired")
		s.metrics.AddEvictions(1)
		return nil, sentinel.ErrExpired
	}

	s.metrics.IncrementLookup("hit")
	res := cached.res
	return &res, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, res *models.Resolution, ttl time.Duration) error {
	if res == nil || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = cachedResolution{res: *res, storedAt: time.Now(), ttl: ttl}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) InvalidateTier(_ context.Context, tier domain.Level) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for key, cached := range s.entries {
		if resolutionHasTier(&cached.res, tier) {
			delete(s.entries, key)
			dropped++
		}
	}
	s.metrics.AddInvalidations(dropped)
	return dropped, nil
}

// Len reports the live entry count, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			evicted := 0
			for key, cached := range s.entries {
				if cached.expired(now) {
					delete(s.entries, key)
					evicted++
				}
			}
			s.mu.Unlock()
			s.metrics.AddEvictions(evicted)
		}
	}
}
