package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Role names shared by the user directory and authorization checks.
const (
	RoleCustomer        = "customer"
	RoleShopOwner       = "shop_owner"
	RoleIndividualOwner = "individual_owner"
	RoleAdmin           = "admin"
)

// Session is the server-side view of the caller for one request.
// It is rebuilt from storage on every authenticated request.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// HasRole reports whether the session role is one of roles.
func (s *Session) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

type sessionKey struct{}

const ginSessionKey = "session"

// WithSession stores the session in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// GetSession returns the authenticated session or nil.
func GetSession(c *gin.Context) *Session {
	if v, ok := c.Get(ginSessionKey); ok {
		if s, ok := v.(*Session); ok {
			return s
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return ""
}

// SetSession stores s in both the gin context and the request context.
func SetSession(c *gin.Context, s *Session) {
	c.Set(ginSessionKey, s)
	c.Request = c.Request.WithContext(WithSession(c.Request.Context(), s))
}
