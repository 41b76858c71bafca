package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the authentication routes under /auth.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMiddleware, h.Me)
		authGroup.PUT("/profile", authMiddleware, h.UpdateProfile)
	}
}
