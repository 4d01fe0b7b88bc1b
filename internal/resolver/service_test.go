package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"civiscope/internal/audit"
	"civiscope/internal/cache"
	"civiscope/internal/coverage"
	"civiscope/internal/domain"
	"civiscope/internal/jurisdiction"
	jstore "civiscope/internal/jurisdiction/store"
	"civiscope/internal/location"
	"civiscope/internal/representatives/models"
	dErrors "civiscope/pkg/domain-errors"
)

// stubAggregator records every call and returns one representative per
// allowed tier. A nonzero delay makes each call sleep first.
type stubAggregator struct {
	mu    sync.Mutex
	calls [][]domain.Level
	err   error
	delay time.Duration
}

func (a *stubAggregator) Aggregate(_ context.Context, zip string, allowed []domain.Level, _ models.Options) (*models.AggregationResult, error) {
	a.mu.Lock()
	a.calls = append(a.calls, allowed)
	delay := a.delay
	a.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if a.err != nil {
		return nil, a.err
	}

	res := &models.AggregationResult{Representatives: []models.Representative{}}
	for _, tier := range allowed {
		res.Representatives = append(res.Representatives, models.Representative{
			ID:         zip + "-" + string(tier),
			SourceTier: tier,
			Contact:    models.ContactInfo{Phone: "555-0100"},
		})
		switch tier {
		case domain.LevelFederal:
			res.Breakdown.Federal++
		case domain.LevelState:
			res.Breakdown.State++
		case domain.LevelLocal:
			res.Breakdown.Local++
		}
	}
	res.Total = len(res.Representatives)
	return res, nil
}

func (a *stubAggregator) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

type ResolverSuite struct {
	suite.Suite
	agg   *stubAggregator
	store *cache.MemoryStore
	inbox chan audit.Event
	svc   *Service
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	boundary, err := jurisdiction.NewBoundarySource(jstore.NewInMemory())
	s.Require().NoError(err)

	classifier, err := jurisdiction.New([]jurisdiction.Source{
		boundary,
		jurisdiction.NewHeuristicSource(),
	})
	s.Require().NoError(err)

	cov, err := coverage.NewResolver(0.3)
	s.Require().NoError(err)

	s.agg = &stubAggregator{}
	s.store = cache.NewMemoryStore(0)
	s.inbox = make(chan audit.Event, 16)

	svc, err := New(
		location.NewStaticGeocoder(),
		classifier,
		cov,
		s.agg,
		s.store,
		WithCacheTTL(time.Minute),
		WithAuditInbox(s.inbox),
	)
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ResolverSuite) TearDownTest() {
	s.store.Close()
}

func (s *ResolverSuite) TestFullCoverageResolution() {
	res, err := s.svc.Resolve(context.Background(), "90210", models.Options{})
	s.Require().NoError(err)

	s.Equal("90210", res.ZipCode)
	s.Equal(jurisdiction.TypeIncorporatedCity, res.Jurisdiction.JurisdictionType)
	s.Equal(coverage.TypeFullCoverage, res.Coverage.Type)
	s.Require().NotNil(res.AreaInfo)
	s.Equal("Beverly Hills", res.AreaInfo.City)
	s.False(res.ComputedAt.IsZero())

	s.Require().Equal(1, s.agg.callCount())
	s.Equal(domain.AllLevels(), s.agg.calls[0])
	s.Equal(3, res.Aggregation.Total)
	s.Equal(res.Aggregation.Total, res.Aggregation.Breakdown.Sum())
}

func (s *ResolverSuite) TestCacheHitSkipsPipeline() {
	ctx := context.Background()

	first, err := s.svc.Resolve(ctx, "90210", models.Options{})
	s.Require().NoError(err)

	second, err := s.svc.Resolve(ctx, "90210", models.Options{})
	s.Require().NoError(err)

	s.Equal(1, s.agg.callCount(), "second resolve must come from cache")
	s.Equal(first.ComputedAt, second.ComputedAt)

	events := s.drainEvents()
	s.Require().Len(events, 2)
	s.False(events[0].CacheHit)
	s.True(events[1].CacheHit)
}

func (s *ResolverSuite) TestConcurrentRequestsShareOneComputation() {
	s.agg.delay = 50 * time.Millisecond

	const callers = 8
	results := make([]*models.Resolution, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.svc.Resolve(context.Background(), "90210", models.Options{})
		}()
	}
	wg.Wait()

	for i := range callers {
		s.Require().NoError(errs[i])
		s.Require().NotNil(results[i])
		s.Equal(results[0].ComputedAt, results[i].ComputedAt, "every caller got the shared result")
	}
	s.Equal(1, s.agg.callCount(), "one in-flight computation per key")
}

func (s *ResolverSuite) TestOptionsSplitCacheEntries() {
	ctx := context.Background()

	_, err := s.svc.Resolve(ctx, "90210", models.Options{})
	s.Require().NoError(err)
	_, err = s.svc.Resolve(ctx, "90210", models.Options{IncludeCommitteeInfo: true})
	s.Require().NoError(err)

	s.Equal(2, s.agg.callCount(), "different options must not share a cache entry")
}

func (s *ResolverSuite) TestUnknownZipResolvesUnsupported() {
	res, err := s.svc.Resolve(context.Background(), "00000", models.Options{})
	s.Require().NoError(err)

	s.Equal(coverage.TypeNotSupported, res.Coverage.Type)
	s.Equal(jurisdiction.TypeUnknown, res.Jurisdiction.JurisdictionType)
	s.Nil(res.AreaInfo)
	s.Zero(res.Aggregation.Total)
	s.Zero(s.agg.callCount(), "unsupported areas never reach the tier sources")
}

func (s *ResolverSuite) TestFederalOnlyAreaLimitsTiers() {
	res, err := s.svc.Resolve(context.Background(), "89049", models.Options{})
	s.Require().NoError(err)

	s.Equal(coverage.TypeFederalOnly, res.Coverage.Type)
	s.Require().Equal(1, s.agg.callCount())
	s.NotContains(s.agg.calls[0], domain.LevelLocal)
}

func (s *ResolverSuite) TestInvalidZipRejected() {
	_, err := s.svc.Resolve(context.Background(), "9021", models.Options{})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Zero(s.agg.callCount())
}

func (s *ResolverSuite) TestAggregatorFailureNotCached() {
	ctx := context.Background()

	s.agg.err = dErrors.New(dErrors.CodeUnavailable, "all tiers down")
	_, err := s.svc.Resolve(ctx, "90210", models.Options{})
	s.Require().Error(err)

	s.agg.err = nil
	res, err := s.svc.Resolve(ctx, "90210", models.Options{})
	s.Require().NoError(err)
	s.Equal(3, res.Aggregation.Total)
	s.Equal(2, s.agg.callCount(), "failures must not poison the cache")
}

func (s *ResolverSuite) TestWarmFuncPrimesCache() {
	err := cache.Warm(context.Background(), nil, []string{"90210", "10001"}, 2, s.svc.WarmFunc())
	s.Require().NoError(err)
	s.Equal(2, s.agg.callCount())

	_, err = s.svc.Resolve(context.Background(), "90210", models.Options{})
	s.Require().NoError(err)
	s.Equal(2, s.agg.callCount(), "warmed zip must be served from cache")
}

func (s *ResolverSuite) drainEvents() []audit.Event {
	var events []audit.Event
	for {
		select {
		case e := <-s.inbox:
			events = append(events, e)
		default:
			return events
		}
	}
}
