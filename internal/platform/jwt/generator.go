// Package jwtmw issues and verifies HS256 session tokens and provides the
// Gin middleware that guards protected routes.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the lifetime of a session token.
const DefaultExpiration = 7 * 24 * time.Hour

// ErrEmptySecret is returned when a generator or verifier is built without a signing key.
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Generator signs tokens that assert a user identity.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a Generator with the provided secret and token lifetime.
// A zero expiration falls back to DefaultExpiration; every token carries exp.
func NewGenerator(secret string, expiration time.Duration) (*Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expiration == 0 {
		expiration = DefaultExpiration
	}
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}, nil
}

// GenerateToken creates a signed token whose subject is userID.
func (g *Generator) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
