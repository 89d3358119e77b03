package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// PatientService wraps the /patients endpoints.
type PatientService struct {
	client *Client
}

func (s *PatientService) List(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := s.client.invokeJSON(ctx, "patients", http.MethodGet, "/patients/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PatientService) Get(ctx context.Context, id int64) (*Patient, error) {
	if id <= 0 {
		return nil, errors.New("api: patient id required")
	}
	var out Patient
	if err := s.client.invokeJSON(ctx, "patients", http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByUser resolves the patient record linked to an auth user, the first
// step of every booking flow.
func (s *PatientService) GetByUser(ctx context.Context, userID int64) (*Patient, error) {
	if userID <= 0 {
		return nil, errors.New("api: user id required")
	}
	var out Patient
	if err := s.client.invokeJSON(ctx, "patients", http.MethodGet, fmt.Sprintf("/patients/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) Create(ctx context.Context, patient Patient) (*Patient, error) {
	if patient.Name == "" {
		return nil, errors.New("api: patient name required")
	}
	var out Patient
	if err := s.client.invokeJSON(ctx, "patients", http.MethodPost, "/patients/", patient, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) Update(ctx context.Context, id int64, patient Patient) (*Patient, error) {
	if id <= 0 {
		return nil, errors.New("api: patient id required")
	}
	var out Patient
	if err := s.client.invokeJSON(ctx, "patients", http.MethodPut, fmt.Sprintf("/patients/%d", id), patient, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PatientService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("api: patient id required")
	}
	return s.client.invokeJSON(ctx, "patients", http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil)
}
