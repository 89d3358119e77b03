package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// DoctorService wraps the /doctor endpoints, including the multipart
// create/update variants that carry an optional profile picture, and the
// working-hours sub-resource.
type DoctorService struct {
	client *Client
}

func (s *DoctorService) List(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := s.client.invokeJSON(ctx, "doctors", http.MethodGet, "/doctor/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DoctorService) Get(ctx context.Context, id int64) (*Doctor, error) {
	if id <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out Doctor
	if err := s.client.invokeJSON(ctx, "doctors", http.MethodGet, fmt.Sprintf("/doctor/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) GetByUser(ctx context.Context, userID int64) (*Doctor, error) {
	if userID <= 0 {
		return nil, errors.New("api: user id required")
	}
	var out Doctor
	if err := s.client.invokeJSON(ctx, "doctors", http.MethodGet, fmt.Sprintf("/doctor/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create registers a doctor. The backend expects multipart/form-data with a
// JSON blob part named "doctor" plus an optional "profilePicture" file part.
func (s *DoctorService) Create(ctx context.Context, doctor Doctor, photo io.Reader, photoName string) (*Doctor, error) {
	body, contentType, err := doctorForm(doctor, photo, photoName)
	if err != nil {
		return nil, err
	}
	var out Doctor
	if err := s.client.invoke(ctx, "doctors", http.MethodPost, "/doctor/create", nil, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) Update(ctx context.Context, id int64, doctor Doctor, photo io.Reader, photoName string) (*Doctor, error) {
	if id <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	body, contentType, err := doctorForm(doctor, photo, photoName)
	if err != nil {
		return nil, err
	}
	var out Doctor
	if err := s.client.invoke(ctx, "doctors", http.MethodPut, fmt.Sprintf("/doctor/%d", id), nil, body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DoctorService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("api: doctor id required")
	}
	return s.client.invokeJSON(ctx, "doctors", http.MethodDelete, fmt.Sprintf("/doctor/%d", id), nil, nil)
}

func (s *DoctorService) WorkingHours(ctx context.Context, doctorID int64) ([]WorkingHour, error) {
	if doctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out []WorkingHour
	if err := s.client.invokeJSON(ctx, "doctors", http.MethodGet, fmt.Sprintf("/doctor/%d/working-hours", doctorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceWorkingHours overwrites the doctor's weekly schedule. The backend
// uses these intervals to generate candidate slots.
func (s *DoctorService) ReplaceWorkingHours(ctx context.Context, doctorID int64, hours []WorkingHour) ([]WorkingHour, error) {
	if doctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out []WorkingHour
	if err := s.client.invokeJSON(ctx, "doctors", http.MethodPut, fmt.Sprintf("/doctor/%d/working-hours", doctorID), hours, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func doctorForm(doctor Doctor, photo io.Reader, photoName string) ([]byte, string, error) {
	blob, err := json.Marshal(doctor)
	if err != nil {
		return nil, "", fmt.Errorf("api: marshal doctor: %w", err)
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("doctor", string(blob)); err != nil {
		return nil, "", fmt.Errorf("api: write doctor field: %w", err)
	}
	if photo != nil {
		name := photoName
		if name == "" {
			name = "profile.jpg"
		}
		part, err := writer.CreateFormFile("profilePicture", name)
		if err != nil {
			return nil, "", fmt.Errorf("api: create photo part: %w", err)
		}
		if _, err := io.Copy(part, photo); err != nil {
			return nil, "", fmt.Errorf("api: copy photo: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("api: close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
