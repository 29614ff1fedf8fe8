package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/response"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

type Handler struct {
	service vehicle.Service
}

func NewHandler(service vehicle.Service) *Handler {
	return &Handler{service: service}
}

// isStaff reports whether the authenticated user is an employee or admin,
// based on the role claim in the JWT.
func isStaff(c *gin.Context) bool {
	role := user.Role(auth.GetUserRole(c))
	return role == user.RoleEmployee || role == user.RoleAdmin
}

func (h *Handler) List(c *gin.Context) {
	var req ListVehiclesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	// Customers only ever see their own vehicles; staff may filter freely.
	ownerID := req.OwnerID
	if !isStaff(c) {
		ownerID = auth.GetUserID(c)
	}

	filter := vehicle.Filter{
		OwnerID:   ownerID,
		Keyword:   req.Keyword,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	vehicles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list vehicles")
		return
	}

	items := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = NewVehicleResponse(v)
	}

	response.OK(c, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "vehicle not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to get vehicle")
		return
	}

	if !isStaff(c) && v.OwnerID != auth.GetUserID(c) {
		response.Fail(c, http.StatusForbidden, "permission denied")
		return
	}

	response.OK(c, NewVehicleResponse(v))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateVehicleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := vehicle.CreateRequest{
		OwnerID: auth.GetUserID(c),
		Make:    body.Make,
		Model:   body.Model,
		Year:    body.Year,
		Plate:   body.Plate,
	}

	v, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrInvalidYear):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, vehicle.ErrPlateAlreadyUsed):
			response.Fail(c, http.StatusConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to create vehicle")
		}
		return
	}

	response.Created(c, NewVehicleResponse(v))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var body UpdateVehicleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := vehicle.UpdateRequest{
		Make:  body.Make,
		Model: body.Model,
		Year:  body.Year,
		Plate: body.Plate,
	}

	v, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, vehicle.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		case errors.Is(err, vehicle.ErrInvalidYear):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, vehicle.ErrPlateAlreadyUsed):
			response.Fail(c, http.StatusConflict, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to update vehicle")
		}
		return
	}

	response.OK(c, NewVehicleResponse(v))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), isStaff(c)); err != nil {
		switch {
		case errors.Is(err, vehicle.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, vehicle.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to delete vehicle")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
