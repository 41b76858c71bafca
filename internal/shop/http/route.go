package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

// RegisterRoutes wires the shop endpoints. Browsing is public.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	shops := r.Group("/shops")
	{
		shops.GET("", h.List)
		shops.GET("/my-shop", authMiddleware, h.MyShop)
		shops.GET("/:id", h.Get)
		shops.POST("", authMiddleware, auth.RequireRoles(auth.RoleShopOwner, auth.RoleAdmin), h.Create)
		shops.PUT("/:id", authMiddleware, h.Update)
	}
}
