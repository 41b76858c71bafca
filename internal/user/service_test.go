package user

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

type memRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]*User{}}
}

func (r *memRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.seq)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *memRepo) UpdateProfile(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewService(repo, auth.NewBcryptPasswordHasher(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, RegisterRequest{
		Name:     "Asha",
		Email:    "  Asha@Example.COM ",
		Password: "demo123",
		City:     "Pune",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "asha@example.com", u.Email)
	assert.Equal(t, auth.RoleCustomer, u.Role, "role defaults to customer")
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "demo123", u.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "demo123"})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Name: "X", Email: " ", Password: "demo123"})
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, RegisterRequest{Name: "  ", Email: "x@example.com", Password: "demo123"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Register(ctx, RegisterRequest{Name: "X", Email: "x@example.com", Password: "12345"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("admin cannot be self-assigned", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterRequest{Name: "X", Email: "root@example.com", Password: "demo123", Role: auth.RoleAdmin})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("owner role", func(t *testing.T) {
		o, err := svc.Register(ctx, RegisterRequest{Name: "Shop", Email: "shop@example.com", Password: "demo123", Role: auth.RoleShopOwner})
		require.NoError(t, err)
		assert.True(t, o.IsOwner())
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	registered, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "demo123"})
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ASHA@example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	require.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "demo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.users[registered.ID].IsActive = false
	_, err = svc.Login(ctx, "asha@example.com", "demo123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestLoadSession(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	u, err := svc.Register(ctx, RegisterRequest{Name: "Ravi", Email: "ravi@example.com", Password: "demo123", Role: auth.RoleIndividualOwner})
	require.NoError(t, err)

	s, err := svc.LoadSession(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, &auth.Session{UserID: u.ID, Email: "ravi@example.com", Name: "Ravi", Role: auth.RoleIndividualOwner}, s)

	// role comes from storage, so a promotion is visible on the next request
	repo.users[u.ID].Role = auth.RoleAdmin
	s, err = svc.LoadSession(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())

	repo.users[u.ID].IsActive = false
	_, err = svc.LoadSession(ctx, u.ID)
	assert.ErrorIs(t, err, ErrInactiveUser)

	_, err = svc.LoadSession(ctx, "00000000-0000-0000-0000-999999999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	u, err := svc.Register(ctx, RegisterRequest{
		Name: "Asha", Email: "asha@example.com", Password: "demo123", City: "Pune", Phone: "9000000001",
	})
	require.NoError(t, err)

	name := "  Asha Rao "
	city := "Mumbai"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Name: &name, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, "Mumbai", updated.City)
	assert.Equal(t, "9000000001", updated.Phone, "omitted fields are unchanged")
	assert.Equal(t, "asha@example.com", updated.Email)
	assert.Equal(t, "Asha Rao", repo.users[u.ID].Name)

	s, err := svc.LoadSession(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", s.Name)

	blank := "   "
	_, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, "Asha Rao", repo.users[u.ID].Name)

	_, err = svc.UpdateProfile(ctx, "00000000-0000-0000-0000-999999999999", UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}
