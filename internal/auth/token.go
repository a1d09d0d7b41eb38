// Package auth resolves externally issued session tokens into a typed
// session. Token issuance (login, signup, refresh) lives in the hosted auth
// service; this package only verifies and maps claims.
package auth

import (
	"errors"
	"time"

	"fasttrack/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the token claims the API cares about: the subject plus the
// role and email the auth service stamps into user metadata.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ClaimsFromToken parses and verifies an HS256 token.
func ClaimsFromToken(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

// ResolveSession maps a bearer token to a session. Resolution happens once
// per request; missing, invalid, or expired tokens yield the guest session
// rather than an error, so unauthenticated browsing keeps working and the
// role gates reject where it matters.
func ResolveSession(tokenStr string, secret []byte) model.Session {
	if tokenStr == "" {
		return model.Guest
	}

	claims, err := ClaimsFromToken(tokenStr, secret)
	if err != nil || claims.Subject == "" {
		return model.Guest
	}

	switch claims.Role {
	case "admin":
		return model.Session{Role: model.RoleStaff, UserID: claims.Subject, Email: claims.Email}
	case "customer":
		return model.Session{Role: model.RoleCustomer, UserID: claims.Subject, Email: claims.Email}
	default:
		return model.Guest
	}
}

// NewToken signs an HS256 token carrying the given identity. The production
// tokens come from the external auth service; this is for tests and local
// tooling.
func NewToken(secret []byte, subject, email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
