package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoginPersistsAllFields(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signToken(t, jwt.MapClaims{
		"sub":    "42",
		"userId": float64(42),
		"role":   "PATIENT",
		"name":   "pat.jones",
		"exp":    exp.Unix(),
	})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "pat.jones", req.Username)
		_ = json.NewEncoder(w).Encode(api.LoginResponse{Token: token})
	}))
	defer ts.Close()

	path := sessionPath(t)
	s, err := Open(path, nil)
	require.NoError(t, err)
	client := api.New(api.Config{BaseURL: ts.URL, Tokens: s})

	require.NoError(t, s.Login(context.Background(), client.Auth, "pat.jones", "secret"))

	assert.True(t, s.IsLoggedIn())
	assert.False(t, s.IsTokenExpired())
	assert.Equal(t, "PATIENT", s.Role())
	assert.Equal(t, int64(42), s.UserID())
	assert.Equal(t, "pat.jones", s.UserName())
	assert.Equal(t, token, s.Token())

	// Reopen from disk: everything survives.
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, token, reopened.Token())
	assert.Equal(t, "PATIENT", reopened.Role())
	assert.Equal(t, int64(42), reopened.UserID())
	assert.False(t, reopened.IsTokenExpired())
}

func TestFailedLoginLeavesSessionUntouched(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
	}))
	defer ts.Close()

	path := sessionPath(t)
	s, err := Open(path, nil)
	require.NoError(t, err)
	client := api.New(api.Config{BaseURL: ts.URL, Tokens: s})

	err = s.Login(context.Background(), client.Auth, "pat.jones", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, s.IsLoggedIn())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "session file should not exist after failed login")
}

func TestIsTokenExpired(t *testing.T) {
	path := sessionPath(t)
	s, err := Open(path, nil)
	require.NoError(t, err)

	// No expiry stored: expired.
	assert.True(t, s.IsTokenExpired())

	require.NoError(t, s.Establish(signToken(t, jwt.MapClaims{
		"sub": "1", "role": "ADMIN", "exp": time.Now().Add(-time.Minute).Unix(),
	})))
	assert.True(t, s.IsTokenExpired())

	require.NoError(t, s.Establish(signToken(t, jwt.MapClaims{
		"sub": "1", "role": "ADMIN", "exp": time.Now().Add(time.Minute).Unix(),
	})))
	assert.False(t, s.IsTokenExpired())
}

func TestLogoutClearsEverything(t *testing.T) {
	path := sessionPath(t)
	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Establish(signToken(t, jwt.MapClaims{
		"sub": "9", "role": "DOCTOR", "exp": time.Now().Add(time.Hour).Unix(),
	})))
	require.True(t, s.IsLoggedIn())

	require.NoError(t, s.Logout())
	assert.False(t, s.IsLoggedIn())
	assert.Empty(t, s.Role())
	assert.Zero(t, s.UserID())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Second logout is a no-op.
	require.NoError(t, s.Logout())
}

func TestRequireRole(t *testing.T) {
	s, err := Open(sessionPath(t), nil)
	require.NoError(t, err)

	require.Error(t, s.RequireRole("ADMIN"), "logged-out session must be denied")

	require.NoError(t, s.Establish(signToken(t, jwt.MapClaims{
		"sub": "3", "role": "RECEPTIONIST", "exp": time.Now().Add(time.Hour).Unix(),
	})))
	assert.NoError(t, s.RequireRole("RECEPTIONIST"))
	err = s.RequireRole("ADMIN")
	assert.ErrorIs(t, err, ErrRoleDenied)
}

func TestCorruptSessionFileStartsUnauthenticated(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.False(t, s.IsLoggedIn())
}
