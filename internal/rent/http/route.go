package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the booking endpoints. Every route requires a session;
// createLimit throttles new booking requests.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware, createLimit gin.HandlerFunc) {
	rents := r.Group("/rents")
	rents.Use(authMiddleware)
	{
		rents.POST("", createLimit, h.Create)
		rents.GET("/my-bookings", h.MyBookings)
		rents.GET("/my-requests", h.MyRequests)
		rents.GET("/:id", h.Get)
		rents.PUT("/:id/status", h.UpdateStatus)
	}
}
