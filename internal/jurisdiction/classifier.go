package jurisdiction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"civiscope/internal/domain"
	"civiscope/internal/location"
	"civiscope/pkg/platform/sentinel"
)

// Classifier resolves a location to a jurisdiction classification by walking
// its sources in descending reliability order. The first source with an
// answer wins; its reliability tier bounds the confidence score.
//
// "No answer" is a valid low-confidence result, never an error: callers must
// be able to show a limited-support message rather than an error screen.
type Classifier struct {
	sources []Source
	logger  *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger attaches a logger for source-fault diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New builds a classifier over the given sources. Sources are reordered by
// descending reliability so callers can pass them in any order.
func New(sources []Source, opts ...Option) (*Classifier, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one classification source is required")
	}

	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Reliability() > ordered[j].Reliability()
	})

	c := &Classifier{sources: ordered}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Classify determines the jurisdiction for a resolved location. It is pure
// over its inputs plus read-only access to the classification sources.
//
// If no source answers, the result is TypeUnknown with confidence 0, which
// the coverage resolver treats as unsupported.
func (c *Classifier) Classify(ctx context.Context, loc *location.Data) (*DetectionResult, error) {
	if loc == nil {
		return Unknown(""), nil
	}
	if err := domain.ValidateZip(loc.ZipCode); err != nil {
		return nil, err
	}

	for _, src := range c.sources {
		result, err := src.Detect(ctx, loc)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue
			}
			// A faulty source must not abort classification; the next tier
			// still gets its chance.
			if c.logger != nil {
				c.logger.WarnContext(ctx, "classification source failed",
					"source", src.Name(),
					"zip", loc.ZipCode,
					"error", err,
				)
			}
			continue
		}
		if result == nil {
			continue
		}
		return result, nil
	}

	return Unknown(loc.County), nil
}
