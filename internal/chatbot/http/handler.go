package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/chatbot"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/response"
)

type Handler struct {
	service chatbot.Service
}

func NewHandler(service chatbot.Service) *Handler {
	return &Handler{service: service}
}

// Message handles a single chat message and returns the assistant's reply.
func (h *Handler) Message(c *gin.Context) {
	var body MessageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Message is required")
		return
	}

	if strings.TrimSpace(body.Message) == "" {
		response.Fail(c, http.StatusBadRequest, "Message is required")
		return
	}

	result, err := h.service.HandleMessage(c.Request.Context(), body.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, NewMessageResponse(result))
}
