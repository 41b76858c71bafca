package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

// RegisterRoutes wires the catalog endpoints. Reads are public.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := r.Group("/items")
	{
		items.GET("", h.List)
		items.GET("/my-listings", authMiddleware, h.MyListings)
		items.GET("/:id", h.Get)
		items.POST("", authMiddleware,
			auth.RequireRoles(auth.RoleShopOwner, auth.RoleIndividualOwner, auth.RoleAdmin),
			h.Create)
		items.PUT("/:id", authMiddleware, h.Update)
		items.DELETE("/:id", authMiddleware, h.Delete)
	}
}
