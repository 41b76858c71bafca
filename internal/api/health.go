package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
			response.Fail(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Success: true, Message: "Rentique API is running"})
	}
}
