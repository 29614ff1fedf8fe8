package project

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

type CreateRequest struct {
	VehicleID   string
	CustomerID  string
	Title       string
	Description string
}

type UpdateRequest struct {
	Title       *string
	Description *string
	Status      *string
}

type LogWorkRequest struct {
	ProjectID   string
	EmployeeID  string
	Hours       float64
	Description string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Project, error)
	GetByID(ctx context.Context, id string, actorID string, isStaff bool) (*Project, error)
	List(ctx context.Context, filter Filter) ([]*Project, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Project, error)
	Delete(ctx context.Context, id string) error

	// LogWork appends a structured work-log entry. Staff only; enforced by routing.
	LogWork(ctx context.Context, req LogWorkRequest) (*WorkLogEntry, error)
	// WorkLog returns the project's work history, oldest entry first.
	WorkLog(ctx context.Context, projectID string, actorID string, isStaff bool) ([]*WorkLogEntry, error)
}

type service struct {
	repo       Repository
	vehService vehicle.Service
}

func NewService(repo Repository, vehService vehicle.Service) Service {
	return &service{
		repo:       repo,
		vehService: vehService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	// The vehicle must exist and belong to the requesting customer.
	v, err := s.vehService.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if v.OwnerID != req.CustomerID {
		return nil, ErrPermissionDenied
	}

	p := &Project{
		VehicleID:   req.VehicleID,
		CustomerID:  req.CustomerID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Status:      StatusQuoted,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isStaff bool) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && p.CustomerID != actorID {
		return nil, ErrPermissionDenied
	}
	return p, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Project, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := p.CustomerID == actorID
	if !isStaff && !isOwner {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		// Customers may only approve quotes or cancel their own project;
		// any other transition is a staff action.
		if !isStaff {
			if st != StatusCancelled && !(st == StatusApproved && p.Status == StatusQuoted) {
				return nil, ErrPermissionDenied
			}
		}
		p.Status = st
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) LogWork(ctx context.Context, req LogWorkRequest) (*WorkLogEntry, error) {
	if req.Hours <= 0 || req.Hours > 24 {
		return nil, ErrInvalidHours
	}

	if _, err := s.repo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	e := &WorkLogEntry{
		ProjectID:   req.ProjectID,
		EmployeeID:  req.EmployeeID,
		Hours:       req.Hours,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.repo.AppendWorkLog(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) WorkLog(ctx context.Context, projectID string, actorID string, isStaff bool) ([]*WorkLogEntry, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !isStaff && p.CustomerID != actorID {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListWorkLog(ctx, projectID)
}
