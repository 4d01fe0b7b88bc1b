// Package resolver is the engine facade: one call takes a ZIP code and
// option flags through geocoding, jurisdiction classification, the coverage
// decision, and roster aggregation, with caching and request coalescing in
// front of the pipeline.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"civiscope/internal/audit"
	"civiscope/internal/cache"
	cachemetrics "civiscope/internal/cache/metrics"
	"civiscope/internal/coverage"
	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	"civiscope/internal/location"
	"civiscope/internal/representatives/models"
	"civiscope/pkg/platform/sentinel"
	"civiscope/pkg/requestcontext"
)

const defaultCacheTTL = 10 * time.Minute

// Aggregator assembles the roster for the tiers the coverage decision
// allows.
type Aggregator interface {
	Aggregate(ctx context.Context, zip string, allowed []domain.Level, opts models.Options) (*models.AggregationResult, error)
}

// Service runs the resolution pipeline. Concurrent requests for the same
// (zip, options) pair are coalesced into one computation.
type Service struct {
	geocoder   location.Geocoder
	classifier *jurisdiction.Classifier
	coverage   *coverage.Resolver
	aggregator Aggregator
	cache      cache.Store
	cacheTTL   time.Duration
	cacheStats *cachemetrics.Metrics
	events     chan<- audit.Event
	logger     *slog.Logger
	tracer     trace.Tracer
	group      singleflight.Group
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithCacheTTL sets how long computed resolutions stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithAuditInbox routes one audit event per resolution into the given
// channel. Sends never block; events are dropped when the inbox is full.
func WithAuditInbox(inbox chan<- audit.Event) Option {
	return func(s *Service) {
		s.events = inbox
	}
}

// WithCacheMetrics lets the service record compute durations on cache
// misses alongside the stores' hit and miss counters.
func WithCacheMetrics(m *cachemetrics.Metrics) Option {
	return func(s *Service) {
		s.cacheStats = m
	}
}

// WithTracer overrides the default tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New creates the resolution service.
func New(
	geocoder location.Geocoder,
	classifier *jurisdiction.Classifier,
	coverageResolver *coverage.Resolver,
	aggregator Aggregator,
	cacheStore cache.Store,
	opts ...Option,
) (*Service, error) {
	if geocoder == nil {
		return nil, fmt.Errorf("resolver.New: geocoder is required")
	}
	if classifier == nil {
		return nil, fmt.Errorf("resolver.New: classifier is required")
	}
	if coverageResolver == nil {
		return nil, fmt.Errorf("resolver.New: coverage resolver is required")
	}
	if aggregator == nil {
		return nil, fmt.Errorf("resolver.New: aggregator is required")
	}
	if cacheStore == nil {
		return nil, fmt.Errorf("resolver.New: cache store is required")
	}

	s := &Service{
		geocoder:   geocoder,
		classifier: classifier,
		coverage:   coverageResolver,
		aggregator: aggregator,
		cache:      cacheStore,
		cacheTTL:   defaultCacheTTL,
		tracer:     otel.Tracer("civiscope/resolver"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Resolve answers one (zip, options) request, from cache when possible.
func (s *Service) Resolve(ctx context.Context, zip string, opts models.Options) (*models.Resolution, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "resolver.Resolve",
		trace.WithAttributes(attribute.String("zip", zip)))
	defer span.End()

	if err := domain.ValidateZip(zip); err != nil {
		span.RecordError(err)
		return nil, err
	}

	key := cache.Key(zip, opts)

	res, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		span.SetAttributes(attribute.Bool("cache_hit", true))
		s.publish(ctx, res, opts, true, time.Since(start))
		return res, nil
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrExpired):
		// compute below
	default:
		// A broken cache degrades to recomputation, never to failure.
		if s.logger != nil {
			s.logger.WarnContext(ctx, "cache read failed", "zip", zip, "error", err)
		}
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.compute(ctx, zip, opts)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	res = v.(*models.Resolution)
	span.SetAttributes(attribute.Bool("coalesced", shared))

	s.publish(ctx, res, opts, false, time.Since(start))
	return res, nil
}

// WarmFunc adapts Resolve for cache warmup.
func (s *Service) WarmFunc() cache.WarmFunc {
	return func(ctx context.Context, zip string) error {
		_, err := s.Resolve(ctx, zip, models.Options{})
		return err
	}
}

// compute runs the full pipeline once and caches the outcome.
func (s *Service) compute(ctx context.Context, zip string, opts models.Options) (*models.Resolution, error) {
	ctx, span := s.tracer.Start(ctx, "resolver.compute")
	defer span.End()

	computeStart := time.Now()
	defer func() {
		s.cacheStats.ObserveComputeDuration(time.Since(computeStart))
	}()

	loc, err := s.geocoder.Geocode(ctx, zip)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("geocode %s: %w", zip, err)
	}

	det, err := s.classifier.Classify(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", zip, err)
	}

	cov := s.coverage.Resolve(det)
	span.SetAttributes(
		attribute.String("jurisdiction", string(det.JurisdictionType)),
		attribute.String("coverage", string(cov.Type)),
	)

	res := &models.Resolution{
		ZipCode:      zip,
		Jurisdiction: det,
		Coverage:     cov,
		Aggregation:  models.AggregationResult{Representatives: []models.Representative{}},
		AreaInfo:     loc,
		ComputedAt:   requestcontext.Now(ctx),
	}

	// An unsupported area resolves without ever touching the tier sources.
	if allowed := cov.AllowedLevels(); len(allowed) > 0 {
		agg, err := s.aggregator.Aggregate(ctx, zip, allowed, opts)
		if err != nil {
			return nil, err
		}
		res.Aggregation = *agg
	}

	if err := s.cache.Set(ctx, cache.Key(zip, opts), res, s.cacheTTL); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "cache write failed", "zip", zip, "error", err)
		}
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "resolution computed",
			"zip", zip,
			"jurisdiction", det.JurisdictionType,
			"coverage", cov.Type,
			"total", res.Aggregation.Total,
			"partial", res.Aggregation.Partial,
		)
	}
	return res, nil
}

// publish emits one audit event per answered resolution, without blocking
// the response path.
func (s *Service) publish(ctx context.Context, res *models.Resolution, opts models.Options, cacheHit bool, elapsed time.Duration) {
	if s.events == nil || res == nil {
		return
	}

	event := audit.Event{
		Timestamp: time.Now(),
		RequestID: requestcontext.RequestID(ctx),
		ZipCode:   res.ZipCode,
		Options:   opts.Signature(),
		Coverage:  string(res.Coverage.Type),
		Total:     res.Aggregation.Total,
		Partial:   res.Aggregation.Partial,
		CacheHit:  cacheHit,
		Duration:  elapsed,
	}
	if res.Jurisdiction != nil {
		event.Jurisdiction = string(res.Jurisdiction.JurisdictionType)
	}
	event.FailedTiers = res.Aggregation.FailedTiers

	select {
	case s.events <- event:
	default:
		if s.logger != nil {
			s.logger.WarnContext(ctx, "audit inbox full, event dropped", "zip", res.ZipCode)
		}
	}
}
