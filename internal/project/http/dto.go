package http

import (
	"time"

	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/project"
)

// ListProjectsRequest defines query parameters for listing projects.
type ListProjectsRequest struct {
	request.ListParams
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	VehicleID  string `form:"vehicle_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=quoted approved in_progress completed cancelled"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at status title"`
}

type ProjectResponse struct {
	ID           string    `json:"id"`
	VehicleID    string    `json:"vehicle_id"`
	VehicleLabel string    `json:"vehicle_label"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewProjectResponse(p *project.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		VehicleID:    p.VehicleID,
		VehicleLabel: p.VehicleLabel,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		Title:        p.Title,
		Description:  p.Description,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type WorkLogEntryResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	LoggedAt     time.Time `json:"logged_at"`
	Hours        float64   `json:"hours"`
	Description  string    `json:"description"`
}

func NewWorkLogEntryResponse(e *project.WorkLogEntry) WorkLogEntryResponse {
	return WorkLogEntryResponse{
		ID:           e.ID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		LoggedAt:     e.LoggedAt,
		Hours:        e.Hours,
		Description:  e.Description,
	}
}

type CreateProjectRequest struct {
	VehicleID   string `json:"vehicle_id" binding:"required,uuid"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=quoted approved in_progress completed cancelled"`
}

type LogWorkBody struct {
	Hours       float64 `json:"hours" binding:"required,gt=0"`
	Description string  `json:"description" binding:"required"`
}
