package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/auth"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/pkg/response"
	"github.com/hari-collage/bcafinalyearprojects-rentiqueweb/internal/user"
)

type fakeService struct {
	users map[string]*user.User
}

func (f *fakeService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == req.Email {
			return nil, user.ErrEmailAlreadyUsed
		}
	}
	u := &user.User{ID: "11111111-1111-1111-1111-111111111111", Name: req.Name, Email: req.Email, Role: auth.RoleCustomer, IsActive: true, CreatedAt: time.Now()}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeService) Login(ctx context.Context, email, password string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email && password == "demo123" {
			if !u.IsActive {
				return nil, user.ErrInactiveUser
			}
			return u, nil
		}
	}
	return nil, user.ErrInvalidCredentials
}

func (f *fakeService) GetByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeService) LoadSession(ctx context.Context, id string) (*auth.Session, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Session{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

func (f *fakeService) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, user.ErrNameRequired
		}
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.City != nil {
		u.City = *req.City
	}
	if req.Pincode != nil {
		u.Pincode = *req.Pincode
	}
	return u, nil
}

func setupRouter() (*gin.Engine, *fakeService, *auth.JWTManager) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{users: map[string]*user.User{}}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager, svc))
	return r, svc, jwtManager
}

func do(r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginMe(t *testing.T) {
	r, _, jwtManager := setupRouter()

	w := do(r, http.MethodPost, "/api/auth/register", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "demo123"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.True(t, reg.Success)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "asha@example.com", reg.User.Email)

	claims, err := jwtManager.ParseAndValidate(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.Subject)
	assert.Equal(t, auth.RoleCustomer, claims.Role)

	w = do(r, http.MethodPost, "/api/auth/register", RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "demo123"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", LoginRequest{Email: "asha@example.com", Password: "demo123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var login AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login.Message)

	w = do(r, http.MethodGet, "/api/auth/me", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var me MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, reg.User.ID, me.User.ID)
}

func TestLogin_Failures(t *testing.T) {
	r, svc, _ := setupRouter()
	svc.users["u1"] = &user.User{ID: "u1", Email: "off@example.com", IsActive: false}

	w := do(r, http.MethodPost, "/api/auth/login", LoginRequest{Email: "off@example.com", Password: "demo123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ErrInvalidCredentials.Message, resp.Message, "inactive users get the generic message")

	w = do(r, http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, svc, jwtManager := setupRouter()
	svc.users["u1"] = &user.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: auth.RoleCustomer, City: "Pune", IsActive: true}
	token, err := jwtManager.GenerateAccessToken(svc.users["u1"].Session())
	require.NoError(t, err)

	body := map[string]string{"name": "Asha Rao", "phone_no": "9000000001", "pincode": "400001"}
	w := do(r, http.MethodPut, "/api/auth/profile", body, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Profile updated", resp.Message)
	assert.Equal(t, "Asha Rao", resp.User.Name)
	assert.Equal(t, "9000000001", resp.User.Phone)
	assert.Equal(t, "Pune", resp.User.City)

	w = do(r, http.MethodPut, "/api/auth/profile", map[string]string{"name": ""}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/api/auth/profile", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
