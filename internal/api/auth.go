package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// AuthService wraps the /auth endpoints. Login does not touch any stored
// session; see the session package for persistence.
type AuthService struct {
	client *Client
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.New("api: username and password required")
	}
	var out LoginResponse
	err := s.client.invokeJSON(ctx, "auth", http.MethodPost, "/auth/login", LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("api: login response missing token")
	}
	return &out, nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return errors.New("api: username and password required")
	}
	return s.client.invokeJSON(ctx, "auth", http.MethodPost, "/auth/register", req, nil)
}
