package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/request"
	"github.com/nekogravitycat/auto-service-backend/internal/pkg/response"
	"github.com/nekogravitycat/auto-service-backend/internal/project"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
)

type Handler struct {
	service project.Service
}

func NewHandler(service project.Service) *Handler {
	return &Handler{service: service}
}

func isStaff(c *gin.Context) bool {
	role := user.Role(auth.GetUserRole(c))
	return role == user.RoleEmployee || role == user.RoleAdmin
}

func (h *Handler) List(c *gin.Context) {
	var req ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query parameters: "+err.Error())
		return
	}

	// Customers only ever see their own projects.
	customerID := req.CustomerID
	if !isStaff(c) {
		customerID = auth.GetUserID(c)
	}

	filter := project.Filter{
		CustomerID: customerID,
		VehicleID:  req.VehicleID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	projects, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to list projects")
		return
	}

	items := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		items[i] = NewProjectResponse(p)
	}

	response.OK(c, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), req.ID, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to get project")
		}
		return
	}

	response.OK(c, NewProjectResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := project.CreateRequest{
		VehicleID:   body.VehicleID,
		CustomerID:  auth.GetUserID(c),
		Title:       body.Title,
		Description: body.Description,
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrVehicleNotFound):
			response.Fail(c, http.StatusNotFound, err.Error())
		case errors.Is(err, project.ErrTitleRequired):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, project.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "vehicle does not belong to you")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to create project")
		}
		return
	}

	response.Created(c, NewProjectResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var body UpdateProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := project.UpdateRequest{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	}

	p, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		case errors.Is(err, project.ErrInvalidStatus), errors.Is(err, project.ErrTitleRequired):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to update project")
		}
		return
	}

	response.OK(c, NewProjectResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "project not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to delete project")
		return
	}

	c.Status(http.StatusNoContent)
}

// LogWork appends a work-log entry to a project. Employee/admin only.
func (h *Handler) LogWork(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	var body LogWorkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req := project.LogWorkRequest{
		ProjectID:   uri.ID,
		EmployeeID:  auth.GetUserID(c),
		Hours:       body.Hours,
		Description: body.Description,
	}

	e, err := h.service.LogWork(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrInvalidHours):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to log work")
		}
		return
	}

	response.Created(c, NewWorkLogEntryResponse(e))
}

// WorkLog lists a project's work history.
func (h *Handler) WorkLog(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	entries, err := h.service.WorkLog(c.Request.Context(), req.ID, auth.GetUserID(c), isStaff(c))
	if err != nil {
		switch {
		case errors.Is(err, project.ErrNotFound):
			response.Fail(c, http.StatusNotFound, "project not found")
		case errors.Is(err, project.ErrPermissionDenied):
			response.Fail(c, http.StatusForbidden, "permission denied")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to list work log")
		}
		return
	}

	items := make([]WorkLogEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = NewWorkLogEntryResponse(e)
	}

	response.OK(c, items)
}
