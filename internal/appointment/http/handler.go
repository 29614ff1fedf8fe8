package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/appointment"
	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/response"
	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
)

type Handler struct {
	service appointment.Service
	loc     *time.Location
}

func NewHandler(service appointment.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{service: service, loc: loc}
}

func isStaff(c *gin.Context) bool {
	role := user.Role(auth.GetUserRole(c))
	return role == user.RoleEmployee || role == user.RoleAdmin
}

// AvailableSlots returns the open hourly slots for a date. Public route.
func (h *Handler) AvailableSlots(c *gin.Context) {
	var req AvailableSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	if req.Date == "" {
		response.Fail(c, http.StatusBadRequest, "Date is required")
		return
	}

	date, err := schedule.ParseDate(req.Date, h.loc)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	av, err := h.service.AvailabilityForDate(c.Request.Context(), date)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to compute availability")
		return
	}

	response.OK(c, NewAvailableSlotsResponse(av))
}

func (h *Handler) List(c *gin.Context) {
	var req ListAppointmentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	// Customers only ever see their own appointments.
	customerID := req.CustomerID
	if !isStaff(c) {
		customerID = auth.GetUserID(c)
	}

	filter := appointment.Filter{
		CustomerID: customerID,
		VehicleID:  req.VehicleID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	if req.From != "" {
		from, err := schedule.ParseDate(req.From, h.loc)
		if err == nil {
			filter.From = &from
		}
	}
	if req.To != "" {
		to, err := schedule.ParseDate(req.To, h.loc)
		if err == nil {
			end := to.AddDate(0, 0, 1)
			filter.To = &end
		}
	}

	appointments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list appointments")
		return
	}

	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = NewAppointmentResponse(a)
	}

	response.OK(c, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "appointment not found")
		case errors.Is(err, appointment.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to get appointment")
		}
		return
	}

	response.OK(c, NewAppointmentResponse(a))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := appointment.CreateRequest{
		CustomerID:  auth.GetUserID(c),
		VehicleID:   body.VehicleID,
		ServiceType: body.ServiceType,
		ScheduledAt: body.ScheduledAt,
		Notes:       body.Notes,
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrVehicleNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, appointment.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "vehicle does not belong to you")
		case errors.Is(err, appointment.ErrSlotTaken):
			response.Fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, appointment.ErrClosedDay),
			errors.Is(err, appointment.ErrOutsideBusinessHours),
			errors.Is(err, appointment.ErrScheduledInPast):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to create appointment")
		}
		return
	}

	response.Created(c, NewAppointmentResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var body UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := appointment.UpdateRequest{
		ScheduledAt: body.ScheduledAt,
		ServiceType: body.ServiceType,
		Status:      body.Status,
		Notes:       body.Notes,
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "appointment not found")
		case errors.Is(err, appointment.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		case errors.Is(err, appointment.ErrSlotTaken):
			response.Fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, appointment.ErrClosedDay),
			errors.Is(err, appointment.ErrOutsideBusinessHours),
			errors.Is(err, appointment.ErrScheduledInPast),
			errors.Is(err, appointment.ErrInvalidStatus):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to update appointment")
		}
		return
	}

	response.OK(c, NewAppointmentResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "appointment not found")
		case errors.Is(err, appointment.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to delete appointment")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
