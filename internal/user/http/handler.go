package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user"
)

type UserHandler struct {
	userService user.Service
	jwtManager  *auth.JWTManager
}

func NewHandler(userService user.Service, jwtManager *auth.JWTManager) *UserHandler {
	return &UserHandler{
		userService: userService,
		jwtManager:  jwtManager,
	}
}

// Register handles the user registration process.
// It validates the payload, creates the user and signs them in.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	u, err := h.userService.Register(c.Request.Context(), user.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
		City:     req.City,
		Pincode:  req.Pincode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, "User registered successfully", u)
}

// Login authenticates a user using email and password.
// On success, it returns a JWT access token and the user profile.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	u, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials), errors.Is(err, user.ErrInactiveUser):
			// do not reveal which condition failed
			response.Error(c, user.ErrInvalidCredentials)
		default:
			response.Error(c, err)
		}
		return
	}

	zerolog.Ctx(c.Request.Context()).Info().Str("user_id", u.ID).Msg("user logged in")
	h.respondWithToken(c, http.StatusOK, "Login successful", u)
}

// Me retrieves the profile of the currently authenticated user.
func (h *UserHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		response.Fail(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{Success: true, User: NewUserResponse(u)})
}

// UpdateProfile edits the caller's own contact details.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), auth.GetUserID(c), user.UpdateProfileRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		City:    req.City,
		Pincode: req.Pincode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{Success: true, Message: "Profile updated", User: NewUserResponse(u)})
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, message string, u *user.User) {
	token, err := h.jwtManager.GenerateAccessToken(u.Session())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(status, AuthResponse{
		Success: true,
		Message: message,
		Token:   token,
		User:    NewUserResponse(u),
	})
}
