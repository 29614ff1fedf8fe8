package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

type fakeRepo struct {
	appointments map[string]*Appointment
	nextID       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[string]*Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, a *Appointment) error {
	r.nextID++
	a.ID = time.Now().Format("20060102150405") + string(rune('a'+r.nextID))
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range r.appointments {
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.appointments[id]; !ok {
		return ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *fakeRepo) ListForDate(_ context.Context, day time.Time) ([]*Appointment, error) {
	next := day.AddDate(0, 0, 1)
	var out []*Appointment
	for _, a := range r.appointments {
		if !a.ScheduledAt.Before(day) && a.ScheduledAt.Before(next) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeVehicleService struct {
	vehicles map[string]*vehicle.Vehicle
}

func (s *fakeVehicleService) Create(context.Context, vehicle.CreateRequest) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (s *fakeVehicleService) GetByID(_ context.Context, id string) (*vehicle.Vehicle, error) {
	v, ok := s.vehicles[id]
	if !ok {
		return nil, vehicle.ErrNotFound
	}
	return v, nil
}

func (s *fakeVehicleService) List(context.Context, vehicle.Filter) ([]*vehicle.Vehicle, int, error) {
	panic("not used")
}

func (s *fakeVehicleService) Update(context.Context, string, vehicle.UpdateRequest, string, bool) (*vehicle.Vehicle, error) {
	panic("not used")
}

func (s *fakeVehicleService) Delete(context.Context, string, string, bool) error {
	panic("not used")
}

const (
	testCustomerID = "11111111-1111-1111-1111-111111111111"
	testOtherID    = "22222222-2222-2222-2222-222222222222"
	testVehicleID  = "33333333-3333-3333-3333-333333333333"
)

// newTestService returns a service with a fixed clock so "the past" is
// deterministic. The clock reads 2025-11-10 08:00 (a Monday morning).
func newTestService(repo *fakeRepo) *service {
	vehicles := &fakeVehicleService{vehicles: map[string]*vehicle.Vehicle{
		testVehicleID: {ID: testVehicleID, OwnerID: testCustomerID, Make: "Toyota", Model: "Corolla"},
	}}
	svc := NewService(repo, vehicles, time.UTC).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, 11, 10, 8, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("books an open weekday slot", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		a, err := svc.Create(ctx, CreateRequest{
			CustomerID:  testCustomerID,
			VehicleID:   testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, a.Status)
		assert.NotEmpty(t, a.ID)
	})

	t.Run("rejects a slot already booked", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		when := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change", ScheduledAt: when,
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "inspection", ScheduledAt: when.Add(30 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		when := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
		a, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change", ScheduledAt: when,
		})
		require.NoError(t, err)

		st := string(StatusCancelled)
		_, err = svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testCustomerID, false)
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "inspection", ScheduledAt: when,
		})
		assert.NoError(t, err)
	})

	t.Run("rejects Sundays", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 16, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrClosedDay)
	})

	t.Run("rejects hours outside the business window", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 12, 18, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	})

	t.Run("rejects past times", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 7, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrScheduledInPast)
	})

	t.Run("rejects a vehicle owned by someone else", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testOtherID, VehicleID: testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rejects an unknown vehicle", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: "44444444-4444-4444-4444-444444444444",
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrVehicleNotFound)
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service, *Appointment) {
		repo := newFakeRepo()
		svc := newTestService(repo)
		a, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "oil change",
			ScheduledAt: time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		return svc, a
	}

	t.Run("customer may cancel their own appointment", func(t *testing.T) {
		svc, a := setup(t)

		st := string(StatusCancelled)
		updated, err := svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testCustomerID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
	})

	t.Run("customer may not confirm their own appointment", func(t *testing.T) {
		svc, a := setup(t)

		st := string(StatusConfirmed)
		_, err := svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testCustomerID, false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("staff may progress the status", func(t *testing.T) {
		svc, a := setup(t)

		st := string(StatusInProgress)
		updated, err := svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testOtherID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, updated.Status)
	})

	t.Run("other customers are denied", func(t *testing.T) {
		svc, a := setup(t)

		st := string(StatusCancelled)
		_, err := svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testOtherID, false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, a := setup(t)

		st := "done"
		_, err := svc.Update(ctx, a.ID, UpdateRequest{Status: &st}, testCustomerID, false)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("reschedule to a free hour", func(t *testing.T) {
		svc, a := setup(t)

		when := time.Date(2025, 11, 12, 14, 0, 0, 0, time.UTC)
		updated, err := svc.Update(ctx, a.ID, UpdateRequest{ScheduledAt: &when}, testCustomerID, false)
		require.NoError(t, err)
		assert.Equal(t, 14, updated.ScheduledAt.Hour())
	})

	t.Run("reschedule within the same hour does not conflict with itself", func(t *testing.T) {
		svc, a := setup(t)

		when := time.Date(2025, 11, 12, 10, 30, 0, 0, time.UTC)
		_, err := svc.Update(ctx, a.ID, UpdateRequest{ScheduledAt: &when}, testCustomerID, false)
		assert.NoError(t, err)
	})

	t.Run("reschedule onto a taken hour is rejected", func(t *testing.T) {
		svc, a := setup(t)

		_, err := svc.Create(ctx, CreateRequest{
			CustomerID: testCustomerID, VehicleID: testVehicleID,
			ServiceType: "inspection",
			ScheduledAt: time.Date(2025, 11, 12, 11, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		when := time.Date(2025, 11, 12, 11, 0, 0, 0, time.UTC)
		_, err = svc.Update(ctx, a.ID, UpdateRequest{ScheduledAt: &when}, testCustomerID, false)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})
}

func TestAvailabilityForDate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Create(ctx, CreateRequest{
		CustomerID: testCustomerID, VehicleID: testVehicleID,
		ServiceType: "oil change",
		ScheduledAt: time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	av, err := svc.AvailabilityForDate(ctx, time.Date(2025, 11, 12, 15, 45, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2025-11-12", av.Date)
	assert.Equal(t, "Wednesday", av.DayName)
	assert.Equal(t, 9, av.TotalSlots)
	assert.Equal(t, 1, av.BookedSlots)
	assert.Len(t, av.Slots, 8)
	assert.False(t, av.HourOpen(10))
}
