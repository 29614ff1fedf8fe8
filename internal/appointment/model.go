package appointment

import (
	"errors"
	"time"
)

var (
	ErrNotFound             = errors.New("appointment not found")
	ErrSlotTaken            = errors.New("time slot already booked")
	ErrClosedDay            = errors.New("service station is closed on that day")
	ErrOutsideBusinessHours = errors.New("time is outside business hours")
	ErrInvalidStatus        = errors.New("invalid appointment status")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrScheduledInPast      = errors.New("cannot book an appointment in the past")
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked hourly service slot.
type Appointment struct {
	ID           string // UUID
	CustomerID   string
	CustomerName string
	VehicleID    string
	VehicleLabel string
	ServiceType  string
	ScheduledAt  time.Time
	Status       Status
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing appointments.
type Filter struct {
	CustomerID string
	VehicleID  string
	Status     string
	From       *time.Time // Filter appointments scheduled at or after this time
	To         *time.Time // Filter appointments scheduled at or before this time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
