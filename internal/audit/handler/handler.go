package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civiscope/internal/audit"
	"civiscope/internal/domain"
	dErrors "civiscope/pkg/domain-errors"
	"civiscope/pkg/platform/httputil"
)

// Lister reads back captured audit events.
type Lister interface {
	List(ctx context.Context, zip string) ([]audit.Event, error)
}

// Handler exposes the audit trail for operators.
type Handler struct {
	publisher Lister
	logger    *slog.Logger
}

// New constructs an audit handler.
func New(publisher Lister, logger *slog.Logger) *Handler {
	return &Handler{
		publisher: publisher,
		logger:    logger,
	}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/audit/{zip}", h.HandleListByZip)
}

// HandleListByZip handles GET /admin/audit/{zip} requests.
func (h *Handler) HandleListByZip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	zip := chi.URLParam(r, "zip")
	if err := domain.ValidateZip(zip); err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.publisher.List(ctx, zip)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit listing failed", "zip", zip, "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit trail unavailable"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	httputil.WriteJSON(w, http.StatusOK, events)
}
