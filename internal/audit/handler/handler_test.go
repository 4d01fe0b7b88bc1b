package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/internal/audit"
	"civiscope/pkg/testutil"
)

func newTestRouter(t *testing.T, events ...audit.Event) chi.Router {
	t.Helper()

	store := audit.NewMemoryStore()
	for _, event := range events {
		require.NoError(t, store.Append(context.Background(), event))
	}

	r := chi.NewRouter()
	New(audit.NewPublisher(store), slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func TestHandleListByZip(t *testing.T) {
	router := newTestRouter(t,
		audit.Event{ZipCode: "90210", Coverage: "full_coverage", Total: 7},
		audit.Event{ZipCode: "10001", Coverage: "full_coverage", Total: 5},
		audit.Event{ZipCode: "90210", Coverage: "full_coverage", Total: 7, CacheHit: true},
	)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/90210", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	events := testutil.DecodeJSON[[]audit.Event](t, rec)
	require.Len(t, events, 2)
	assert.True(t, events[1].CacheHit)
}

func TestHandleListByZip_NoEvents(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/90210", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHandleListByZip_InvalidZip(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/audit/beverly", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
