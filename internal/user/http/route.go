package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the owner profile routes.
// registerLimiter guards account creation only.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, registerLimiter gin.HandlerFunc) {
	usersGroup := g.Group("/users")
	{
		usersGroup.POST("", registerLimiter, h.Register)
		usersGroup.GET("/:username", h.Get)
		usersGroup.PUT("/:username", h.Update)
		usersGroup.DELETE("/:username", h.Delete)
	}
}
