package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"civiscope/internal/aggregator"
	aggmetrics "civiscope/internal/aggregator/metrics"
	"civiscope/internal/audit"
	audithandler "civiscope/internal/audit/handler"
	"civiscope/internal/cache"
	cachehandler "civiscope/internal/cache/handler"
	cachemetrics "civiscope/internal/cache/metrics"
	"civiscope/internal/coverage"
	"civiscope/internal/jurisdiction"
	jstore "civiscope/internal/jurisdiction/store"
	"civiscope/internal/location"
	"civiscope/internal/platform/config"
	"civiscope/internal/platform/httpserver"
	"civiscope/internal/platform/logger"
	platformredis "civiscope/internal/platform/redis"
	"civiscope/internal/representatives/sources"
	"civiscope/internal/resolver"
	resolverhandler "civiscope/internal/resolver/handler"
	httptransport "civiscope/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Boundary store: authoritative records from Postgres when configured,
	// the bundled dataset otherwise.
	var boundaryStore jurisdiction.BoundaryStore
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		pgStore := jstore.NewPostgres(pool)
		if err := pgStore.Schema(ctx); err != nil {
			log.Error("postgres schema failed", "error", err)
			os.Exit(1)
		}
		boundaryStore = pgStore
		log.Info("boundary store: postgres")
	} else {
		boundaryStore = jstore.NewInMemory()
		log.Info("boundary store: bundled dataset")
	}

	boundarySource, err := jurisdiction.NewBoundarySource(boundaryStore)
	if err != nil {
		log.Error("boundary source init failed", "error", err)
		os.Exit(1)
	}
	classifier, err := jurisdiction.New(
		[]jurisdiction.Source{boundarySource, jurisdiction.NewHeuristicSource()},
		jurisdiction.WithLogger(log),
	)
	if err != nil {
		log.Error("classifier init failed", "error", err)
		os.Exit(1)
	}

	coverageResolver, err := coverage.NewResolver(cfg.ConfidenceFloor)
	if err != nil {
		log.Error("coverage resolver init failed", "error", err)
		os.Exit(1)
	}

	agg, err := aggregator.New(
		[]sources.Source{
			sources.NewFederalRegistry(),
			sources.NewStateRegistry(),
			sources.NewLocalRegistry(),
		},
		aggregator.WithLogger(log),
		aggregator.WithMetrics(aggmetrics.New()),
		aggregator.WithTimeout(cfg.AggregationTimeout),
		aggregator.WithRetryBackoff(cfg.TierRetryBackoff),
		aggregator.WithBreakerThresholds(cfg.BreakerFailures, cfg.BreakerSuccesses),
	)
	if err != nil {
		log.Error("aggregator init failed", "error", err)
		os.Exit(1)
	}

	// Resolution cache: Redis when configured, in-process otherwise.
	cacheMetrics := cachemetrics.New()
	var cacheStore cache.Store
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cacheStore, err = cache.NewRedisStore(redisClient.Client, cache.WithRedisMetrics(cacheMetrics))
		if err != nil {
			log.Error("redis cache init failed", "error", err)
			os.Exit(1)
		}
		log.Info("resolution cache: redis")
	} else {
		memStore := cache.NewMemoryStore(cfg.CacheSweepInterval, cache.WithMemoryMetrics(cacheMetrics))
		defer memStore.Close()
		cacheStore = memStore
		log.Info("resolution cache: in-memory")
	}

	// Audit trail: Kafka sink when brokers are configured, in-memory
	// otherwise. Events flow through a worker so resolutions never block.
	var auditStore audit.Store
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditStore = sink
		log.Info("audit sink: kafka", "topic", cfg.Kafka.Topic)
	} else {
		auditStore = audit.NewMemoryStore()
		log.Info("audit sink: in-memory")
	}

	inbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(auditStore, inbox)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	svc, err := resolver.New(
		location.NewStaticGeocoder(),
		classifier,
		coverageResolver,
		agg,
		cacheStore,
		resolver.WithLogger(log),
		resolver.WithCacheTTL(cfg.CacheTTL),
		resolver.WithCacheMetrics(cacheMetrics),
		resolver.WithAuditInbox(inbox),
	)
	if err != nil {
		log.Error("resolver init failed", "error", err)
		os.Exit(1)
	}

	if len(cfg.WarmupZips) > 0 {
		go func() {
			if err := cache.Warm(ctx, log, cfg.WarmupZips, cfg.WarmupConcurrency, svc.WarmFunc()); err != nil {
				log.Warn("cache warmup aborted", "error", err)
			}
		}()
	}

	handlers := []httptransport.Registrar{
		resolverhandler.New(svc, log),
		cachehandler.New(cacheStore, log),
	}
	if mem, ok := auditStore.(*audit.MemoryStore); ok {
		handlers = append(handlers, audithandler.New(audit.NewPublisher(mem), log))
	}
	router := httptransport.NewRouter(handlers...)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting civiscope", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	<-workerDone
}
