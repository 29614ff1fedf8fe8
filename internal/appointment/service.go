package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nekogravitycat/auto-service-backend/internal/schedule"
	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

type CreateRequest struct {
	CustomerID  string
	VehicleID   string
	ServiceType string
	ScheduledAt time.Time
	Notes       string
}

type UpdateRequest struct {
	ScheduledAt *time.Time
	ServiceType *string
	Status      *string
	Notes       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string, actorID string, isStaff bool) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Appointment, error)
	Delete(ctx context.Context, id string, actorID string, isStaff bool) error

	// AvailabilityForDate computes the open hourly slots for the calendar
	// date of `date`, using the live bookings for that day.
	AvailabilityForDate(ctx context.Context, date time.Time) (schedule.Availability, error)
}

type service struct {
	repo       Repository
	vehService vehicle.Service
	hours      schedule.BusinessHours
	loc        *time.Location
	now        func() time.Time
}

func NewService(repo Repository, vehService vehicle.Service, loc *time.Location) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:       repo,
		vehService: vehService,
		hours:      schedule.DefaultBusinessHours(),
		loc:        loc,
		now:        time.Now,
	}
}

func (s *service) AvailabilityForDate(ctx context.Context, date time.Time) (schedule.Availability, error) {
	at := date.In(s.loc)
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, s.loc)

	existing, err := s.repo.ListForDate(ctx, day)
	if err != nil {
		return schedule.Availability{}, err
	}

	bookings := make([]schedule.Booking, len(existing))
	for i, a := range existing {
		bookings[i] = schedule.Booking{
			ScheduledAt: a.ScheduledAt,
			Status:      string(a.Status),
		}
	}

	return schedule.ComputeAvailability(day, bookings, s.hours), nil
}

// validateSlot checks that t falls on an open business hour and that the
// hour is not already occupied by another booking.
func (s *service) validateSlot(ctx context.Context, t time.Time) error {
	at := t.In(s.loc)

	interval, open := s.hours[at.Weekday()]
	if !open {
		return ErrClosedDay
	}
	if at.Hour() < interval.Start || at.Hour() >= interval.End {
		return ErrOutsideBusinessHours
	}

	av, err := s.AvailabilityForDate(ctx, at)
	if err != nil {
		return err
	}
	if !av.HourOpen(at.Hour()) {
		return ErrSlotTaken
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if req.ScheduledAt.Before(s.now()) {
		return nil, ErrScheduledInPast
	}

	// The vehicle must exist and belong to the booking customer.
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

	if err := s.validateSlot(ctx, req.ScheduledAt); err != nil {
		return nil, err
	}

	a := &Appointment{
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		ServiceType: strings.TrimSpace(req.ServiceType),
		ScheduledAt: req.ScheduledAt.In(s.loc),
		Status:      StatusScheduled,
		Notes:       strings.TrimSpace(req.Notes),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isStaff bool) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isStaff && a.CustomerID != actorID {
		return nil, ErrPermissionDenied
	}
	return a, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isStaff bool) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := a.CustomerID == actorID
	if !isStaff && !isOwner {
		return nil, ErrPermissionDenied
	}

	if req.ScheduledAt != nil {
		if req.ScheduledAt.Before(s.now()) {
			return nil, ErrScheduledInPast
		}
		// Rescheduling within the same hour keeps the appointment's own
		// slot; only a move to a different hour needs a conflict check.
		if !s.sameSlot(a.ScheduledAt, *req.ScheduledAt) {
			if err := s.validateSlot(ctx, *req.ScheduledAt); err != nil {
				return nil, err
			}
		}
		a.ScheduledAt = req.ScheduledAt.In(s.loc)
	}

	if req.ServiceType != nil {
		a.ServiceType = strings.TrimSpace(*req.ServiceType)
	}
	if req.Notes != nil {
		a.Notes = strings.TrimSpace(*req.Notes)
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		// Customers may only cancel their own appointment; status
		// progression is a staff action.
		if !isStaff && st != StatusCancelled {
			return nil, ErrPermissionDenied
		}
		a.Status = st
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// sameSlot reports whether both times fall on the same calendar day and hour
// in the business timezone.
func (s *service) sameSlot(a, b time.Time) bool {
	la, lb := a.In(s.loc), b.In(s.loc)
	ay, am, ad := la.Date()
	by, bm, bd := lb.Date()
	return ay == by && am == bm && ad == bd && la.Hour() == lb.Hour()
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isStaff bool) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isStaff && a.CustomerID != actorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
