package cache

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// WarmFunc computes and caches the resolution for one ZIP code.
type WarmFunc func(ctx context.Context, zip string) error

// Warm pre-computes resolutions for a list of ZIP codes with bounded
// concurrency. Individual failures are logged and skipped; warmup is best
// effort and only a cancelled context aborts it.
func Warm(ctx context.Context, logger *slog.Logger, zips []string, concurrency int, fn WarmFunc) error {
	if len(zips) == 0 || fn == nil {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, zip := range zips {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, zip); err != nil {
				if logger != nil {
					logger.WarnContext(ctx, "cache warmup skipped zip",
						"zip", zip,
						"error", err,
					)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
