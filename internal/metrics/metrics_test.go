package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegister_Idempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	Register()

	before := testutil.ToFloat64(rentsCreated)
	IncRentCreated()
	assert.Equal(t, before+1, testutil.ToFloat64(rentsCreated))

	beforeTr := testutil.ToFloat64(rentTransitions.WithLabelValues("pending", "approved"))
	IncRentTransition("pending", "approved")
	assert.Equal(t, beforeTr+1, testutil.ToFloat64(rentTransitions.WithLabelValues("pending", "approved")))

	beforeConflict := testutil.ToFloat64(rentConflicts.WithLabelValues("create"))
	IncRentConflict("create")
	assert.Equal(t, beforeConflict+1, testutil.ToFloat64(rentConflicts.WithLabelValues("create")))
}

func TestGinMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Register()

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/health", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/health", "200")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rentique_http_requests_total")
}
