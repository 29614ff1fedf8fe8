package project

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrInvalidStatus    = errors.New("invalid project status")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidHours     = errors.New("logged hours must be between 0 and 24")
	ErrTitleRequired    = errors.New("title is required")
)

// Status tracks a modification project through its lifecycle.
type Status string

const (
	StatusQuoted     Status = "quoted"
	StatusApproved   Status = "approved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusQuoted, StatusApproved, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project represents a vehicle modification project.
type Project struct {
	ID           string // UUID
	VehicleID    string
	VehicleLabel string // e.g. "Toyota Supra (AB-1234)"
	CustomerID   string
	CustomerName string
	Title        string
	Description  string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WorkLogEntry is one append-only record of time spent on a project.
// Entries are immutable once written; corrections are new entries.
type WorkLogEntry struct {
	ID           string // UUID
	ProjectID    string
	EmployeeID   string
	EmployeeName string
	LoggedAt     time.Time
	Hours        float64
	Description  string
}

// Filter defines parameters for listing projects.
type Filter struct {
	CustomerID string
	VehicleID  string
	Status     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
