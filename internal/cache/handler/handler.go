package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civiscope/internal/domain"
	dErrors "civiscope/pkg/domain-errors"
	"civiscope/pkg/platform/httputil"
	"civiscope/pkg/requestcontext"
)

// Invalidator drops cached resolutions that carry a given tier.
type Invalidator interface {
	InvalidateTier(ctx context.Context, tier domain.Level) (int, error)
}

// Handler exposes cache administration endpoints.
type Handler struct {
	cache  Invalidator
	logger *slog.Logger
}

// New constructs a cache admin handler.
func New(cache Invalidator, logger *slog.Logger) *Handler {
	return &Handler{
		cache:  cache,
		logger: logger,
	}
}

// Register mounts cache admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/cache/tiers/{tier}/invalidate", h.HandleInvalidateTier)
}

// invalidateResponse reports how many entries one invalidation dropped.
type invalidateResponse struct {
	Tier    domain.Level `json:"tier"`
	Dropped int          `json:"dropped"`
}

// HandleInvalidateTier handles POST /admin/cache/tiers/{tier}/invalidate.
// Operators call it when a tier's upstream registry publishes new rosters.
func (h *Handler) HandleInvalidateTier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tier := domain.Level(chi.URLParam(r, "tier"))
	if !tier.IsValid() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "unknown tier"))
		return
	}

	dropped, err := h.cache.InvalidateTier(ctx, tier)
	if err != nil {
		h.logger.ErrorContext(ctx, "tier invalidation failed",
			"request_id", requestID,
			"tier", tier,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "cache invalidation failed"))
		return
	}

	h.logger.InfoContext(ctx, "tier invalidated",
		"request_id", requestID,
		"tier", tier,
		"dropped", dropped,
	)
	httputil.WriteJSON(w, http.StatusOK, invalidateResponse{Tier: tier, Dropped: dropped})
}
