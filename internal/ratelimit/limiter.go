// Package ratelimit throttles write endpoints per caller.
package ratelimit

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/metrics"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

// Limiter decides whether one more request for key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Middleware rejects requests over the limit with 429. It keys on the
// session user when present and on the client IP otherwise. Limiter
// failures let the request through.
func Middleware(limiter Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":ip:" + c.ClientIP()
		if s, ok := auth.SessionFrom(c.Request.Context()); ok {
			key = scope + ":user:" + s.UserID
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
			c.Next()
			return
		}
		if !allowed {
			metrics.IncRateLimited(scope)
			response.AbortWithError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}
