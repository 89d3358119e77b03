package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// SpecializationService wraps the /specializations CRUD endpoints.
type SpecializationService struct {
	client *Client
}

func (s *SpecializationService) List(ctx context.Context) ([]Specialization, error) {
	var out []Specialization
	if err := s.client.invokeJSON(ctx, "specializations", http.MethodGet, "/specializations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SpecializationService) Get(ctx context.Context, id int64) (*Specialization, error) {
	if id <= 0 {
		return nil, errors.New("api: specialization id required")
	}
	var out Specialization
	if err := s.client.invokeJSON(ctx, "specializations", http.MethodGet, fmt.Sprintf("/specializations/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SpecializationService) Create(ctx context.Context, sp Specialization) (*Specialization, error) {
	if sp.Name == "" {
		return nil, errors.New("api: specialization name required")
	}
	var out Specialization
	if err := s.client.invokeJSON(ctx, "specializations", http.MethodPost, "/specializations", sp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SpecializationService) Update(ctx context.Context, id int64, sp Specialization) (*Specialization, error) {
	if id <= 0 {
		return nil, errors.New("api: specialization id required")
	}
	var out Specialization
	if err := s.client.invokeJSON(ctx, "specializations", http.MethodPut, fmt.Sprintf("/specializations/%d", id), sp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SpecializationService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("api: specialization id required")
	}
	return s.client.invokeJSON(ctx, "specializations", http.MethodDelete, fmt.Sprintf("/specializations/%d", id), nil, nil)
}
