// Package token validates and (for tests and tooling) mints the access tokens
// this service accepts. Token issuance for real users lives in the auth
// service; the practice API only needs validation.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "parlo/pkg/domain-errors"
)

// Claims are the JWT claims carried by access tokens. Subject is the numeric
// user id rendered as a string.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager handles JWT validation for HS256-signed access tokens.
type Manager struct {
	signingKey []byte
	issuer     string
}

func NewManager(signingKey, issuer string) *Manager {
	return &Manager{signingKey: []byte(signingKey), issuer: issuer}
}

// Generate mints a signed token for the given user. Used by tests and the
// local dev token tool.
func (m *Manager) Generate(userID int64, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

// UserIDFromToken validates the token and returns the user id it carries.
func (m *Manager) UserIDFromToken(tokenString string) (int64, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return 0, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, dErrors.New(dErrors.CodeUnauthorized, "invalid subject")
	}
	return userID, nil
}
