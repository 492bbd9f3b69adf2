// Package token signs and checks the admin session token shared by admin-svc
// and the gateway.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "admin-token"
	Subject    = "admin"
	DefaultTTL = 24 * time.Hour
)

var ErrInvalid = errors.New("invalid token")

type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issue signs an admin token valid from now for ttl.
func Issue(secret string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: Subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := tok.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, subject and expiry of raw.
func Verify(secret, raw string) error {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(Subject))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
