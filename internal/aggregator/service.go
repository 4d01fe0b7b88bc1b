package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"civiscope/internal/aggregator/metrics"
	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
	"civiscope/internal/representatives/sources"
	dErrors "civiscope/pkg/domain-errors"
	"civiscope/pkg/platform/circuit"
)

const (
	defaultTimeout      = 3 * time.Second
	defaultRetryBackoff = 150 * time.Millisecond
)

// ErrAllTiersFailed is returned when every queried tier failed and no roster
// can be assembled, even a partial one.
var ErrAllTiersFailed = errors.New("all representative tiers failed")

// Service fans a roster request out to one source adapter per allowed tier,
// settles every tier independently, and merges survivors into a single
// deduplicated roster in federal, state, local order.
type Service struct {
	sources  map[domain.Level]sources.Source
	breakers map[domain.Level]*circuit.Breaker
	timeout  time.Duration
	backoff  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	breakerOpts []circuit.Option
}

// Option configures optional Service dependencies.
type Option func(*Service)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the aggregator metrics collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTimeout bounds a full aggregation, all tiers included.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRetryBackoff sets the pause before the single retry of a retryable
// tier failure. Zero disables retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(s *Service) {
		s.backoff = d
	}
}

// WithBreakerThresholds tunes the per-tier circuit breakers: how many
// consecutive failures open a tier's breaker and how many successes close it
// again. A tier with an open breaker is skipped and counted failed without
// calling its registry.
func WithBreakerThresholds(failures, successes int) Option {
	return func(s *Service) {
		s.breakerOpts = []circuit.Option{
			circuit.WithFailureThreshold(failures),
			circuit.WithSuccessThreshold(successes),
		}
	}
}

// New creates the aggregation service over the given tier adapters.
// Each adapter claims one tier; duplicates are rejected.
func New(srcs []sources.Source, opts ...Option) (*Service, error) {
	if len(srcs) == 0 {
		return nil, fmt.Errorf("aggregator.New: at least one source is required")
	}

	byTier := make(map[domain.Level]sources.Source, len(srcs))
	for _, src := range srcs {
		if src == nil {
			return nil, fmt.Errorf("aggregator.New: nil source")
		}
		tier := src.Tier()
		if !tier.IsValid() {
			return nil, fmt.Errorf("aggregator.New: source with invalid tier %q", tier)
		}
		if _, dup := byTier[tier]; dup {
			return nil, fmt.Errorf("aggregator.New: duplicate source for tier %q", tier)
		}
		byTier[tier] = src
	}

	s := &Service{
		sources: byTier,
		timeout: defaultTimeout,
		backoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.breakers = make(map[domain.Level]*circuit.Breaker, len(byTier))
	for tier := range byTier {
		s.breakers[tier] = circuit.New(tier.String(), s.breakerOpts...)
	}
	return s, nil
}

// tierOutcome is one settled tier: its roster or the error that killed it.
type tierOutcome struct {
	tier domain.Level
	reps []models.Representative
	err  error
}

// Aggregate queries every allowed tier in parallel and merges the results.
// A failed tier degrades the result to partial rather than failing the
// call; only the loss of every tier is an error.
func (s *Service) Aggregate(ctx context.Context, zip string, allowed []domain.Level, opts models.Options) (*models.AggregationResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveAggregateLatency(time.Since(start))
	}()

	if len(allowed) == 0 {
		return &models.AggregationResult{Representatives: []models.Representative{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	outcomes := make([]tierOutcome, len(allowed))

	// Tiers settle independently: a closure records its outcome and never
	// returns an error, so one tier's failure cannot cancel its siblings.
	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range allowed {
		g.Go(func() error {
			outcomes[i] = s.fetchTier(gctx, tier, zip, opts)
			return nil
		})
	}
	_ = g.Wait() // closures never return errors

	return s.merge(ctx, zip, allowed, outcomes)
}

// fetchTier runs one tier's fetch, retrying once after a backoff when the
// failure is retryable. A tier whose breaker is open is counted failed
// without a registry call.
func (s *Service) fetchTier(ctx context.Context, tier domain.Level, zip string, opts models.Options) tierOutcome {
	src, ok := s.sources[tier]
	if !ok {
		return tierOutcome{tier: tier, err: sources.NewSourceError(sources.ErrorInternal, tier, "no source registered for tier", nil)}
	}

	breaker := s.breakers[tier]
	if breaker.IsOpen() {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "tier skipped, registry circuit open",
				"tier", tier,
				"zip", zip,
			)
		}
		s.metrics.IncrementTierOutcome(string(tier), "skipped")
		return tierOutcome{tier: tier, err: sources.NewSourceError(sources.ErrorOutage, tier, "registry circuit open", nil)}
	}

	fetchStart := time.Now()
	reps, err := src.FetchByZip(ctx, zip, opts)
	s.metrics.ObserveTierLatency(string(tier), time.Since(fetchStart))

	if err != nil && sources.IsRetryable(err) && s.backoff > 0 && ctx.Err() == nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "tier fetch failed, retrying",
				"tier", tier,
				"zip", zip,
				"category", sources.CategoryOf(err),
				"error", err,
			)
		}
		s.metrics.IncrementTierOutcome(string(tier), "retried")

		select {
		case <-time.After(s.backoff):
		case <-ctx.Done():
			return tierOutcome{tier: tier, err: err}
		}
		reps, err = src.FetchByZip(ctx, zip, opts)
	}

	if err != nil {
		if _, change := breaker.RecordFailure(); change.Opened && s.logger != nil {
			s.logger.WarnContext(ctx, "tier circuit opened",
				"tier", tier,
				"zip", zip,
			)
		}
		s.metrics.IncrementTierOutcome(string(tier), "failed")
		return tierOutcome{tier: tier, err: err}
	}

	if _, change := breaker.RecordSuccess(); change.Closed && s.logger != nil {
		s.logger.InfoContext(ctx, "tier circuit closed", "tier", tier)
	}
	s.metrics.IncrementTierOutcome(string(tier), "ok")
	return tierOutcome{tier: tier, reps: reps}
}

// merge assembles the settled tiers into one roster. Order is always
// federal, state, local regardless of which tier finished first; records
// are deduplicated by ID and dropped when they carry no contact channel.
func (s *Service) merge(ctx context.Context, zip string, allowed []domain.Level, outcomes []tierOutcome) (*models.AggregationResult, error) {
	byTier := make(map[domain.Level]tierOutcome, len(outcomes))
	for _, o := range outcomes {
		byTier[o.tier] = o
	}

	result := &models.AggregationResult{
		Representatives: []models.Representative{},
	}
	seen := make(map[string]struct{})
	var failures []error

	for _, tier := range domain.AllLevels() {
		if !domain.ContainsLevel(allowed, tier) {
			continue
		}
		o := byTier[tier]
		if o.err != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "tier dropped from roster",
					"tier", tier,
					"zip", zip,
					"category", sources.CategoryOf(o.err),
					"error", o.err,
				)
			}
			result.FailedTiers = append(result.FailedTiers, tier)
			failures = append(failures, o.err)
			continue
		}
		for _, rep := range o.reps {
			if rep.Contact.IsEmpty() {
				continue
			}
			if _, dup := seen[rep.ID]; dup {
				continue
			}
			seen[rep.ID] = struct{}{}
			result.Representatives = append(result.Representatives, rep)
			switch tier {
			case domain.LevelFederal:
				result.Breakdown.Federal++
			case domain.LevelState:
				result.Breakdown.State++
			case domain.LevelLocal:
				result.Breakdown.Local++
			}
		}
	}

	if len(failures) == len(allowed) {
		return nil, dErrors.Wrap(errors.Join(append([]error{ErrAllTiersFailed}, failures...)...),
			dErrors.CodeUnavailable, "representative lookup unavailable")
	}

	result.Total = len(result.Representatives)
	result.Partial = len(result.FailedTiers) > 0
	if result.Partial {
		s.metrics.IncrementPartialResults()
	}
	return result, nil
}
