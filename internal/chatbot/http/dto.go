package http

import (
	"github.com/nekogravitycat/auto-service-backend/internal/chatbot"
)

type MessageRequest struct {
	Message string `json:"message"`
}

// MessageResponse carries the assistant's reply. AvailableSlots and Date are
// null unless the message resolved to an appointment query with a valid date.
type MessageResponse struct {
	Reply          string   `json:"reply"`
	Intent         string   `json:"intent"`
	AvailableSlots []string `json:"availableSlots"`
	Date           *string  `json:"date"`
}

func NewMessageResponse(r *chatbot.Result) MessageResponse {
	resp := MessageResponse{
		Reply:          r.Reply,
		Intent:         string(r.Intent),
		AvailableSlots: r.AvailableSlots,
	}
	if r.Date != "" {
		date := r.Date
		resp.Date = &date
	}
	return resp
}
