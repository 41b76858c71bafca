package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
)

// SessionLoader resolves a token subject to a live session.
// Implementations must reject unknown and deactivated users.
type SessionLoader interface {
	LoadSession(ctx context.Context, userID string) (*Session, error)
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
// and revalidates the subject against storage before every handler.
func AuthRequired(jwtManager *JWTManager, loader SessionLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortWithError(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		session, err := loader.LoadSession(c.Request.Context(), claims.Subject)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Str("subject", claims.Subject).Msg("session rejected")
			response.AbortWithError(c, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		if claims.Role != session.Role {
			zerolog.Ctx(c.Request.Context()).Debug().
				Str("user_id", session.UserID).
				Str("token_role", claims.Role).
				Str("role", session.Role).
				Msg("role changed since token was issued")
		}

		SetSession(c, session)
		c.Next()
	}
}

// RequireRoles ensures the authenticated user has one of the given roles.
// It MUST be used after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			response.AbortWithError(c, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !session.HasRole(roles...) {
			response.AbortWithError(c, http.StatusForbidden, "Role '"+session.Role+"' is not authorized")
			return
		}
		c.Next()
	}
}
