package vehicle

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	vehicles map[string]*Vehicle
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{vehicles: make(map[string]*Vehicle)}
}

func (r *fakeRepo) Create(_ context.Context, v *Vehicle) error {
	for _, existing := range r.vehicles {
		if existing.Plate == v.Plate {
			return ErrPlateAlreadyUsed
		}
	}
	r.nextID++
	v.ID = fmt.Sprintf("veh-%d", r.nextID)
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Vehicle, int, error) {
	var out []*Vehicle
	for _, v := range r.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, v *Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return ErrNotFound
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(r.vehicles, id)
	return nil
}

func TestCreateVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the plate", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		v, err := svc.Create(ctx, CreateRequest{
			OwnerID: "owner-1", Make: " Toyota ", Model: "Supra", Year: 1998, Plate: " ab 1234 ",
		})
		require.NoError(t, err)

		assert.Equal(t, "AB1234", v.Plate)
		assert.Equal(t, "Toyota", v.Make)
	})

	t.Run("rejects duplicate plates", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Make: "Toyota", Model: "Supra", Year: 1998, Plate: "AB1234"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{OwnerID: "owner-2", Make: "Mazda", Model: "RX-7", Year: 1999, Plate: "ab 1234"})
		assert.ErrorIs(t, err, ErrPlateAlreadyUsed)
	})

	t.Run("rejects implausible years", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		for _, year := range []int{1899, time.Now().Year() + 2} {
			_, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Make: "Toyota", Model: "Supra", Year: year, Plate: "AB1234"})
			assert.ErrorIs(t, err, ErrInvalidYear)
		}
	})

	t.Run("allows next year's models", func(t *testing.T) {
		svc := NewService(newFakeRepo())

		_, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Make: "Toyota", Model: "Corolla", Year: time.Now().Year() + 1, Plate: "AB1234"})
		assert.NoError(t, err)
	})
}

func TestUpdateVehiclePermissions(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	v, err := svc.Create(ctx, CreateRequest{OwnerID: "owner-1", Make: "Toyota", Model: "Supra", Year: 1998, Plate: "AB1234"})
	require.NoError(t, err)

	newModel := "Supra MK4"

	t.Run("owner may update", func(t *testing.T) {
		updated, err := svc.Update(ctx, v.ID, UpdateRequest{Model: &newModel}, "owner-1", false)
		require.NoError(t, err)
		assert.Equal(t, "Supra MK4", updated.Model)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.Update(ctx, v.ID, UpdateRequest{Model: &newModel}, "owner-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("staff may update any vehicle", func(t *testing.T) {
		_, err := svc.Update(ctx, v.ID, UpdateRequest{Model: &newModel}, "employee-1", true)
		assert.NoError(t, err)
	})

	t.Run("stranger may not delete", func(t *testing.T) {
		err := svc.Delete(ctx, v.ID, "owner-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})
}
