package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"sentinel/internal/api/health"
	"sentinel/pkg/logger"
)

type staticRoutes map[string]http.HandlerFunc

func (s staticRoutes) Routes() map[string]http.HandlerFunc { return s }

func newTestServer(origin string) *Server {
	log := logger.New(zap.NewNop())
	routes := staticRoutes{
		"GET /api/ping": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		},
	}
	return NewServer(ServerConfig{ServiceName: "sentinel", Version: "test", AllowedOrigin: origin},
		health.New(log, "sentinel", "test"), log, routes)
}

func TestServerRoutes(t *testing.T) {
	h := newTestServer("").Handler()

	tests := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodGet, "/api/ping", http.StatusTeapot},
		{http.MethodPost, "/api/ping", http.StatusNotFound},
		{http.MethodGet, "/live", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestServerCORS(t *testing.T) {
	h := newTestServer("https://app.test").Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerWithoutCORS(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer("").Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
