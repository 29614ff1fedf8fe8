package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/pkg/apperror"
)

// Envelope is the standard JSON wrapper for all API responses.
// Success responses carry `data`, failures carry `error`.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK sends a 200 response with the given payload.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created sends a 201 response with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Fail sends a failure response with the given status code and message.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: false, Error: message})
}

// Error sends a failure response derived from the error.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		Fail(c, appErr.Code, appErr.Message)
		return
	}

	Fail(c, http.StatusInternalServerError, "internal server error")
}
