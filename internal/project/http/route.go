package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/projects")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Update)
		group.GET("/:id/worklog", h.WorkLog)
	}

	// === Staff Routes (Employee or Admin) ===
	staffGroup := group.Group("")
	staffGroup.Use(staffMiddleware)
	{
		staffGroup.POST("/:id/worklog", h.LogWork)
	}

	// === Administration Routes ===
	adminGroup := group.Group("")
	adminGroup.Use(adminMiddleware)
	{
		adminGroup.DELETE("/:id", h.Delete)
	}
}
