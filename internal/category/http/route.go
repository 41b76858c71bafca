package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

// RegisterRoutes wires the category endpoints. Listing is public, changes are admin only.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	categories := r.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", authMiddleware, auth.RequireRoles(auth.RoleAdmin), h.Create)
		categories.DELETE("/:id", authMiddleware, auth.RequireRoles(auth.RoleAdmin), h.Delete)
	}
}
