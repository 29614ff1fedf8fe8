package vehicle

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	OwnerID string
	Make    string
	Model   string
	Year    int
	Plate   string
}

type UpdateRequest struct {
	Make  *string
	Model *string
	Year  *int
	Plate *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, filter Filter) ([]*Vehicle, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Vehicle, error)
	Delete(ctx context.Context, id string, actorID string, isStaff bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Vehicle, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	v := &Vehicle{
		OwnerID: req.OwnerID,
		Make:    strings.TrimSpace(req.Make),
		Model:   strings.TrimSpace(req.Model),
		Year:    req.Year,
		Plate:   normalizePlate(req.Plate),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Vehicle, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Vehicle, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isStaff && v.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Make != nil {
		v.Make = strings.TrimSpace(*req.Make)
	}
	if req.Model != nil {
		v.Model = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		v.Year = *req.Year
	}
	if req.Plate != nil {
		v.Plate = normalizePlate(*req.Plate)
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isStaff bool) error {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isStaff && v.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func validateYear(year int) error {
	// Allow next year's models.
	if year < 1900 || year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	return nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}
