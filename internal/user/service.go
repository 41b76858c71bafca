package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
)

// RegisterRequest carries the profile submitted at sign-up.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
	City     string
	Pincode  string
}

// UpdateProfileRequest holds the editable profile fields. Nil means unchanged.
// Email, role and password are not editable here.
type UpdateProfileRequest struct {
	Name    *string
	Phone   *string
	City    *string
	Pincode *string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	LoadSession(ctx context.Context, id string) (*auth.Session, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 6,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = auth.RoleCustomer
	}
	// admin is granted out of band, never self-assigned
	if !slices.Contains(SelfAssignableRoles, role) {
		return nil, ErrInvalidRole
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         name,
		Email:        cleanEmail,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         role,
		City:         strings.TrimSpace(req.City),
		Pincode:      strings.TrimSpace(req.Pincode),
		IsActive:     true,
	}

	// The repository maps a racing duplicate to ErrEmailAlreadyUsed.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("user_id", u.ID).Msg("update last login failed")
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// LoadSession revalidates a token subject against storage.
func (s *service) LoadSession(ctx context.Context, id string) (*auth.Session, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	return u.Session(), nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.City != nil {
		u.City = strings.TrimSpace(*req.City)
	}
	if req.Pincode != nil {
		u.Pincode = strings.TrimSpace(*req.Pincode)
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
