// Package session owns the bearer token: where it lives on disk, how it is
// handed to the API client, and when it is declared dead. Components receive
// a session explicitly instead of reading shared global state.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	// ErrNoSession is returned when no token has been saved
	ErrNoSession = errors.New("not logged in")

	// ErrExpired is returned when the saved token's exp claim has passed
	ErrExpired = errors.New("session expired, log in again")
)

// Store persists the bearer token in a mode-0600 file and serves it to the
// API client, refusing tokens that are already expired.
type Store struct {
	path   string
	clock  func() time.Time
	logger *zap.Logger
}

// NewStore creates a token store at path. clock may be nil, defaulting to
// time.Now.
func NewStore(path string, clock func() time.Time, logger *zap.Logger) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{path: path, clock: clock, logger: logger}
}

// Save writes the token, creating the parent directory if needed
func (s *Store) Save(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	s.logger.Debug("Session token saved", zap.String("path", s.path))
	return nil
}

// Token returns the saved bearer token. A missing file means no session; a
// token with a passed exp claim is rejected so the caller fails fast with a
// re-login hint instead of collecting a 401.
func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read session token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}

	if expired, err := tokenExpired(token, s.clock()); err == nil && expired {
		return "", ErrExpired
	}
	return token, nil
}

// Clear forgets the session
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification belongs to the backend. Opaque (non-JWT) tokens
// and JWTs without exp are treated as live.
func tokenExpired(token string, now time.Time) (bool, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return exp.Before(now), nil
}
