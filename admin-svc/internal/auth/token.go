// Package auth gates the admin pages behind one shared password.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"toro-admin/token"

	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName = token.CookieName
	Subject    = token.Subject
	DefaultTTL = token.DefaultTTL
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = token.ErrInvalid
)

type Config struct {
	// Password is the plain admin password or its bcrypt hash.
	Password string
	Secret   string
	TTL      time.Duration
	// Secure marks the cookie Secure; enable behind TLS.
	Secure bool
	// SessionKey signs the flash cookie. Falls back to Secret.
	SessionKey string
}

func (c Config) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

// CheckPassword compares candidate with the configured password.
func (c Config) CheckPassword(candidate string) error {
	if c.Password == "" {
		return ErrInvalidCredentials
	}
	if strings.HasPrefix(c.Password, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(candidate)) != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(c.Password), []byte(candidate)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs an admin token valid from now for the configured TTL.
func (c Config) IssueToken(now time.Time) (string, error) {
	return token.Issue(c.Secret, c.ttl(), now)
}

// VerifyToken checks the signature, algorithm and expiry of raw.
func (c Config) VerifyToken(raw string) error {
	return token.Verify(c.Secret, raw)
}
