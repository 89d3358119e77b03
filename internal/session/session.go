// Package session holds the authenticated user's state (token, role, user
// id, expiry) with an explicit open/teardown lifecycle, persisted to a JSON
// file between invocations. It replaces what the original front end kept in
// ambient browser storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// ErrRoleDenied is returned by RequireRole when the stored role does not
// match the required one.
var ErrRoleDenied = errors.New("session: insufficient role")

type data struct {
	Token           string `json:"token"`
	UserRole        string `json:"userRole"`
	UserID          int64  `json:"userId"`
	UserName        string `json:"userName"`
	TokenExpiration int64  `json:"tokenExpiration"` // ms since epoch
}

// Session is safe for concurrent use and implements api.TokenSource.
type Session struct {
	path   string
	logger *logging.Logger
	now    func() time.Time

	mu   sync.RWMutex
	data data
}

// Open loads a persisted session from path. A missing file yields an empty
// (unauthenticated) session, not an error.
func Open(path string, logger *logging.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Session{path: path, logger: logger, now: time.Now}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file is treated as logged out rather than
		// blocking every command.
		logger.Warn("session file unreadable, starting unauthenticated", "path", path, "error", err)
		s.data = data{}
	}
	return s, nil
}

// Login authenticates against the backend and, on success, decodes the JWT
// and persists the session. On failure nothing stored changes and the HTTP
// error propagates.
func (s *Session) Login(ctx context.Context, auth *api.AuthService, username, password string) error {
	resp, err := auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.Establish(resp.Token)
}

// Establish decodes the token's claims (without verifying the signature —
// the client never holds the signing key) and persists the session.
func (s *Session) Establish(token string) error {
	claims, err := decodeClaims(token)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data{
		Token:           token,
		UserRole:        claims.role,
		UserID:          claims.userID,
		UserName:        claims.userName,
		TokenExpiration: claims.expiresAtMS,
	}
	s.mu.Unlock()

	return s.save()
}

// Logout clears all stored session state. No server call is made.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.data = data{}
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// IsLoggedIn reports whether a token is present. It deliberately does not
// check expiry; use IsTokenExpired for that.
func (s *Session) IsLoggedIn() bool {
	return s.Token() != ""
}

// IsTokenExpired reports whether the stored expiry has passed. A missing
// expiry counts as expired.
func (s *Session) IsTokenExpired() bool {
	s.mu.RLock()
	exp := s.data.TokenExpiration
	s.mu.RUnlock()
	if exp == 0 {
		return true
	}
	return s.now().UnixMilli() >= exp
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserRole
}

func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserID
}

func (s *Session) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UserName
}

// RequireRole is the command-level stand-in for the original route guards.
func (s *Session) RequireRole(role string) error {
	if !s.IsLoggedIn() {
		return errors.New("session: not logged in")
	}
	if s.Role() != role {
		return fmt.Errorf("%w: need %s, have %s", ErrRoleDenied, role, s.Role())
	}
	return nil
}

func (s *Session) save() error {
	s.mu.RLock()
	raw, err := json.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

type tokenClaims struct {
	role        string
	userID      int64
	userName    string
	expiresAtMS int64
}

func decodeClaims(token string) (*tokenClaims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("session: decode token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("session: unexpected claim type")
	}

	out := &tokenClaims{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAtMS = exp.Time.UnixMilli()
	}
	if role, ok := claims["role"].(string); ok {
		out.role = role
	} else if role, ok := claims["userRole"].(string); ok {
		out.role = role
	}
	out.userID = numericClaim(claims, "userId")
	if out.userID == 0 {
		if sub, err := claims.GetSubject(); err == nil {
			if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
				out.userID = id
			}
		}
	}
	if name, ok := claims["name"].(string); ok {
		out.userName = name
	} else if name, ok := claims["username"].(string); ok {
		out.userName = name
	} else if sub, err := claims.GetSubject(); err == nil {
		out.userName = sub
	}
	return out, nil
}

func numericClaim(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return 0
}
