package http

import (
	"time"

	"github.com/nekogravitycat/auto-service-backend/internal/appointment"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
)

// AvailableSlotsRequest defines query parameters for the availability lookup.
type AvailableSlotsRequest struct {
	Date string `form:"date"`
}

// AvailableSlotsResponse is the availability payload for a single date.
// AvailableSlots is always present, even when the station is closed.
type AvailableSlotsResponse struct {
	Date           string              `json:"date"`
	DayOfWeek      string              `json:"dayOfWeek"`
	BusinessHours  *string             `json:"businessHours"`
	AvailableSlots []schedule.TimeSlot `json:"availableSlots"`
	TotalSlots     int                 `json:"totalSlots"`
	BookedSlots    int                 `json:"bookedSlots"`
	Message        string              `json:"message,omitempty"`
}

const closedMessage = "Service station is closed on Sundays"

func NewAvailableSlotsResponse(av schedule.Availability) AvailableSlotsResponse {
	resp := AvailableSlotsResponse{
		Date:           av.Date,
		DayOfWeek:      av.DayName,
		AvailableSlots: av.Slots,
		TotalSlots:     av.TotalSlots,
		BookedSlots:    av.BookedSlots,
	}
	if av.IsClosed {
		resp.Message = closedMessage
	} else {
		label := av.BusinessHoursLabel
		resp.BusinessHours = &label
	}
	return resp
}

// ListAppointmentsRequest defines query parameters for listing appointments.
type ListAppointmentsRequest struct {
	request.ListParams
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	VehicleID  string `form:"vehicle_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=scheduled confirmed in_progress completed cancelled"`
	From       string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=scheduled_at status created_at"`
}

type AppointmentResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	VehicleID    string    `json:"vehicle_id"`
	VehicleLabel string    `json:"vehicle_label"`
	ServiceType  string    `json:"service_type"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		VehicleID:    a.VehicleID,
		VehicleLabel: a.VehicleLabel,
		ServiceType:  a.ServiceType,
		ScheduledAt:  a.ScheduledAt,
		Status:       string(a.Status),
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

type CreateAppointmentRequest struct {
	VehicleID   string    `json:"vehicle_id" binding:"required,uuid"`
	ServiceType string    `json:"service_type" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Notes       string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at"`
	ServiceType *string    `json:"service_type"`
	Status      *string    `json:"status"`
	Notes       *string    `json:"notes"`
}
