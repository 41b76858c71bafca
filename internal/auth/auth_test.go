package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	sessions map[string]*Session
}

func (l *stubLoader) LoadSession(ctx context.Context, userID string) (*Session, error) {
	if s, ok := l.sessions[userID]; ok {
		return s, nil
	}
	return nil, errors.New("user not found")
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := m.GenerateAccessToken(&Session{UserID: "user-1", Name: "Meera", Role: RoleShopOwner})
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleShopOwner, claims.Role)
	assert.Equal(t, "Meera", claims.Name)
	assert.Equal(t, "rentique", claims.Issuer)

	_, err = m.GenerateAccessToken(&Session{})
	assert.Error(t, err, "subject is required")
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	customer := &Session{UserID: "user-1", Role: RoleCustomer}

	other := NewJWTManager("another-secret", time.Hour)
	foreign, err := other.GenerateAccessToken(customer)
	require.NoError(t, err)
	_, err = m.ParseAndValidate(foreign)
	assert.Error(t, err, "token signed with a different secret")

	expired := NewJWTManager("secret", -time.Hour)
	old, err := expired.GenerateAccessToken(customer)
	require.NoError(t, err)
	_, err = m.ParseAndValidate(old)
	assert.Error(t, err, "expired token")

	sign := func(method jwt.SigningMethod, claims jwt.Claims) string {
		tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return tok
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	_, err = m.ParseAndValidate(sign(jwt.SigningMethodHS512, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "rentique", Subject: "user-1", ExpiresAt: exp},
	}))
	assert.Error(t, err, "only HS256 is accepted")

	_, err = m.ParseAndValidate(sign(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "elsewhere", Subject: "user-1", ExpiresAt: exp},
	}))
	assert.Error(t, err, "foreign issuer")

	_, err = m.ParseAndValidate(sign(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "rentique", Subject: "user-1"},
	}))
	assert.Error(t, err, "expiry is required")

	_, err = m.ParseAndValidate(sign(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "rentique", ExpiresAt: exp},
	}))
	assert.Error(t, err, "subject is required")

	_, err = m.ParseAndValidate("garbage")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(4)

	hash, err := h.Hash("demo123")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "demo123"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewJWTManager("secret", time.Hour)
	loader := &stubLoader{sessions: map[string]*Session{
		"user-1": {UserID: "user-1", Email: "customer@demo.com", Role: RoleCustomer},
	}}

	r := gin.New()
	r.GET("/private", AuthRequired(m, loader), func(c *gin.Context) {
		s, ok := SessionFrom(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": s.UserID, "gin_user_id": GetUserID(c)})
	})
	r.GET("/owners", AuthRequired(m, loader), RequireRoles(RoleShopOwner, RoleIndividualOwner), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	valid, _ := m.GenerateAccessToken(&Session{UserID: "user-1", Role: RoleCustomer})
	ghost, _ := m.GenerateAccessToken(&Session{UserID: "deleted-user", Role: RoleCustomer})
	// stale role claim; storage still says customer
	promoted, _ := m.GenerateAccessToken(&Session{UserID: "user-1", Role: RoleShopOwner})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"Missing header", "/private", "", http.StatusUnauthorized},
		{"Wrong scheme", "/private", "Basic abc", http.StatusUnauthorized},
		{"Bad token", "/private", "Bearer nope", http.StatusUnauthorized},
		{"Unknown subject is revalidated away", "/private", "Bearer " + ghost, http.StatusUnauthorized},
		{"Valid token", "/private", "Bearer " + valid, http.StatusOK},
		{"Role not allowed", "/owners", "Bearer " + valid, http.StatusForbidden},
		{"Token role is not trusted", "/owners", "Bearer " + promoted, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want != http.StatusOK {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}

func TestSessionHelpers(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAdmin())
	assert.False(t, nilSession.HasRole(RoleAdmin))

	s := &Session{UserID: "u", Role: RoleAdmin}
	assert.True(t, s.IsAdmin())

	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	got, ok := SessionFrom(WithSession(context.Background(), s))
	assert.True(t, ok)
	assert.Same(t, s, got)
}
