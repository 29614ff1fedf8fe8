package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/auto-service-backend/internal/auth"
)

type fakeRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = string(rune('a' + r.nextID))
	cp := *u
	r.byEmail[u.Email] = &cp
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func newTestService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	// Low cost keeps the test fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer account", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Jamie@Example.com", "supersecret", "Jamie")
		require.NoError(t, err)

		assert.Equal(t, "jamie@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
		assert.True(t, u.IsActive)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Jamie", *u.DisplayName)
		assert.NotEqual(t, "supersecret", u.PasswordHash)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "a@b.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "A@B.com", "supersecret", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("rejects an empty email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "   ", "supersecret", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		u, err := svc.Login(ctx, "a@b.com", "supersecret")
		require.NoError(t, err)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@b.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, "nobody@b.com", "supersecret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		inactive := false
		_, err = svc.Update(ctx, u.ID, UpdateRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@b.com", "supersecret")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("promote to employee", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		role := string(RoleEmployee)
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, RoleEmployee, updated.Role)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "a@b.com", "supersecret", "")
		require.NoError(t, err)

		role := "superuser"
		_, err = svc.Update(ctx, u.ID, UpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("blank display name clears it", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "a@b.com", "supersecret", "Jamie")
		require.NoError(t, err)

		blank := "  "
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{DisplayName: &blank})
		require.NoError(t, err)
		assert.Nil(t, updated.DisplayName)
	})
}
