package user

import (
	"net/http"
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "User not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "Email already registered")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "Invalid credentials")
	ErrInactiveUser       = apperror.New(http.StatusUnauthorized, "User is inactive")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "Email is required")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "Name is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "Password must be at least 6 characters")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "Invalid role")
)

// SelfAssignableRoles are the roles a user may pick at registration.
var SelfAssignableRoles = []string{auth.RoleCustomer, auth.RoleShopOwner, auth.RoleIndividualOwner}

// User is an account in the marketplace: a customer who rents, or an owner who lists.
type User struct {
	ID           string // UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         string
	City         string
	Pincode      string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Session is the per-request identity built from the stored account.
func (u *User) Session() *auth.Session {
	return &auth.Session{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
	}
}

// IsOwner reports whether the user lists inventory.
func (u *User) IsOwner() bool {
	return u.Role == auth.RoleShopOwner || u.Role == auth.RoleIndividualOwner
}
