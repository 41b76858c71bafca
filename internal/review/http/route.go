package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware, createLimit gin.HandlerFunc) {
	reviews := r.Group("/reviews")
	{
		reviews.POST("", authMiddleware, createLimit, h.Create)
		reviews.GET("/item/:itemId", h.ListByItem)
	}
}
