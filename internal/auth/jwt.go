package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "rentique"

// Claims are the access token contents. Only Subject is trusted by the API;
// Role mirrors the account at issue time so the web client can pick its
// dashboard without another round trip.
type Claims struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 access tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// GenerateAccessToken signs a token for the session's user.
func (m *JWTManager) GenerateAccessToken(s *Session) (string, error) {
	if s == nil || s.UserID == "" {
		return "", errors.New("jwt subject is required")
	}
	now := time.Now().UTC()

	claims := &Claims{
		Name: s.Name,
		Role: s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

// ParseAndValidate verifies signature, algorithm, issuer and expiry.
func (m *JWTManager) ParseAndValidate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}
	if claims.Subject == "" {
		return nil, errors.New("jwt token has no subject")
	}
	return claims, nil
}
