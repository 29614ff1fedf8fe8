package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/chatbot")

	// Public: the chat widget is available without an account.
	group.POST("/message", h.Message)
}
