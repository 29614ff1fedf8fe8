package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/appointments")

	// === Public Routes ===
	group.GET("/available-slots", h.AvailableSlots)

	// === Authenticated Routes ===
	authGroup := group.Group("")
	authGroup.Use(authMiddleware)
	{
		authGroup.GET("", h.List)
		authGroup.GET("/:id", h.Get)
		authGroup.POST("", h.Create)
		authGroup.PATCH("/:id", h.Update)
		authGroup.DELETE("/:id", h.Delete)
	}
}
