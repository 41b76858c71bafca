package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/logging"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/ratelimit"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(db Pinger) http.Handler {
	logger := zerolog.Nop()
	return NewRouter(Config{
		ClientOrigins: []string{"http://localhost:3000"},
		Logger:        &logger,
		DB:            db,
		JWTManager:    auth.NewJWTManager("test-secret", time.Hour),
		Limiter:       ratelimit.NewMemoryLimiter(10, time.Minute),
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newTestRouter(stubPinger{}), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.NotEmpty(t, w.Header().Get(logging.RequestIDHeader))

	w = serve(newTestRouter(stubPinger{err: errors.New("down")}), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestRequestIDPropagates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(logging.RequestIDHeader, "req-123")
	w := serve(newTestRouter(stubPinger{}), req)
	assert.Equal(t, "req-123", w.Header().Get(logging.RequestIDHeader))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newTestRouter(stubPinger{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/rents"},
		{http.MethodGet, "/api/rents/my-bookings"},
		{http.MethodGet, "/api/rents/my-requests"},
		{http.MethodPut, "/api/rents/3f1c2a9e-8b4d-4c6e-9a7f-1d2e3f4a5b6c/status"},
		{http.MethodPost, "/api/items"},
		{http.MethodDelete, "/api/items/7d0a3a52-9c1f-4e0b-8a55-3b7f8b0c6d21"},
		{http.MethodPost, "/api/shops"},
		{http.MethodGet, "/api/shops/my-shop"},
		{http.MethodPut, "/api/shops/9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"},
		{http.MethodPost, "/api/categories"},
		{http.MethodDelete, "/api/categories/5b7e0c1a-2d3f-4a5b-8c9d-0e1f2a3b4c5d"},
		{http.MethodPut, "/api/auth/profile"},
		{http.MethodPost, "/api/reviews"},
		{http.MethodGet, "/api/auth/me"},
	} {
		w := serve(h, httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}")))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/rents", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(newTestRouter(stubPinger{}), req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	w := serve(newTestRouter(stubPinger{}), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
