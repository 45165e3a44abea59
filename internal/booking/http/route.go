package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/vehicles")
	{
		group.GET("", h.List)
		group.POST("/:username/requests", h.Request)
		group.POST("/:username/requests/confirm", h.Confirm)
		group.POST("/:username/requests/cancel", h.Cancel)
		group.DELETE("/:username/bookings", h.DeleteBooking)
	}
}
