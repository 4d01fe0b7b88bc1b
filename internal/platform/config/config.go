package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration for the resolution engine.
type Server struct {
	Addr string

	// Resolution tunables. Defaults are documented here rather than inferred
	// at call sites so operators have one place to look.
	CacheTTL           time.Duration // resolution cache entry lifetime
	CacheSweepInterval time.Duration // expired-entry sweep period
	AggregationTimeout time.Duration // bound on a whole per-tier fan-out
	TierRetryBackoff   time.Duration // pause before the single per-tier retry
	BreakerFailures    int           // consecutive tier failures that open its breaker
	BreakerSuccesses   int           // consecutive successes that close it again
	ConfidenceFloor    float64       // below this and no levels resolved => not supported
	WarmupConcurrency  int           // parallel warm-up computations
	WarmupZips         []string      // ZIP codes precomputed at startup

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig configures the optional Redis resolution cache backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional authoritative boundary store.
type PostgresConfig struct {
	URL string
}

// KafkaConfig configures the optional resolution audit sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CIVISCOPE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:               addr,
		CacheTTL:           envDuration("CIVISCOPE_CACHE_TTL", 10*time.Minute),
		CacheSweepInterval: envDuration("CIVISCOPE_CACHE_SWEEP_INTERVAL", time.Minute),
		AggregationTimeout: envDuration("CIVISCOPE_AGGREGATION_TIMEOUT", 3*time.Second),
		TierRetryBackoff:   envDuration("CIVISCOPE_TIER_RETRY_BACKOFF", 150*time.Millisecond),
		BreakerFailures:    envInt("CIVISCOPE_BREAKER_FAILURES", 5),
		BreakerSuccesses:   envInt("CIVISCOPE_BREAKER_SUCCESSES", 3),
		ConfidenceFloor:    envFloat("CIVISCOPE_CONFIDENCE_FLOOR", 0.3),
		WarmupConcurrency:  envInt("CIVISCOPE_WARMUP_CONCURRENCY", 4),
		WarmupZips:         envList("CIVISCOPE_WARMUP_ZIPS"),
		Redis: RedisConfig{
			URL:          os.Getenv("CIVISCOPE_REDIS_URL"),
			PoolSize:     envInt("CIVISCOPE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CIVISCOPE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("CIVISCOPE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CIVISCOPE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CIVISCOPE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("CIVISCOPE_POSTGRES_URL"),
		},
		Kafka: KafkaConfig{
			Brokers: envList("CIVISCOPE_KAFKA_BROKERS"),
			Topic:   envString("CIVISCOPE_KAFKA_TOPIC", "civiscope.resolutions"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
