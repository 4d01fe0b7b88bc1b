package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"civiscope/internal/representatives/models"
	dErrors "civiscope/pkg/domain-errors"
	"civiscope/pkg/platform/httputil"
	"civiscope/pkg/requestcontext"
)

// Service defines the interface for resolution operations.
type Service interface {
	Resolve(ctx context.Context, zip string, opts models.Options) (*models.Resolution, error)
}

// Handler wires resolution endpoints to the resolver service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a resolution handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts resolution endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/representatives/{zip}", h.HandleResolve)
}

// HandleResolve handles GET /representatives/{zip} requests.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	zip := chi.URLParam(r, "zip")

	opts, err := parseOptions(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Resolve(ctx, zip, opts)
	if err != nil {
		h.logger.ErrorContext(ctx, "resolution failed",
			"request_id", requestID,
			"zip", zip,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "resolution served",
		"request_id", requestID,
		"zip", zip,
		"coverage", res.Coverage.Type,
		"total", res.Aggregation.Total,
		"partial", res.Aggregation.Partial,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, res)
}

// parseOptions reads the enrichment flags from the query string. Absent
// flags default to false; anything unparsable is a bad request.
func parseOptions(r *http.Request) (models.Options, error) {
	var opts models.Options
	for param, target := range map[string]*bool{
		"include_voting_records": &opts.IncludeVotingRecords,
		"include_bill_data":      &opts.IncludeBillData,
		"include_committee_info": &opts.IncludeCommitteeInfo,
	} {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return models.Options{}, dErrors.New(dErrors.CodeBadRequest, param+" must be a boolean")
		}
		*target = v
	}
	return opts, nil
}
