package http

import (
	"time"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone_no"`
	Role        string     `json:"role"`
	City        string     `json:"city"`
	Pincode     string     `json:"pincode"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// UserTag is a brief representation of a user.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		City:        u.City,
		Pincode:     u.Pincode,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone_no"`
	Role     string `json:"role" binding:"omitempty,oneof=customer shop_owner individual_owner"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest defines the payload for profile edits.
type UpdateProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=100"`
	Phone   *string `json:"phone_no" binding:"omitempty,max=20"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Pincode *string `json:"pincode" binding:"omitempty,max=10"`
}

// ProfileResponse is returned after a profile update.
type ProfileResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// AuthResponse returns the token and user info after register or login.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// MeResponse returns the current user info.
type MeResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
