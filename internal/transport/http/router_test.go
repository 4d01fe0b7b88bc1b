package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiscope/pkg/platform/middleware/requestid"
	"civiscope/pkg/requestcontext"
)

type pingRegistrar struct {
	sawRequestID string
}

func (p *pingRegistrar) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		p.sawRequestID = requestcontext.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestNewRouter_Healthz(t *testing.T) {
	router := NewRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestNewRouter_Metrics(t *testing.T) {
	router := NewRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRouter_MountsRegistrarsBehindMiddleware(t *testing.T) {
	ping := &pingRegistrar{}
	router := NewRouter(ping)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, ping.sawRequestID)
	assert.Equal(t, ping.sawRequestID, rec.Header().Get(requestid.Header))
}

func TestNewRouter_HonorsCallerRequestID(t *testing.T) {
	ping := &pingRegistrar{}
	router := NewRouter(ping)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestid.Header, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", ping.sawRequestID)
}
