package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// LeaveService wraps the /doctor-leave endpoints. Approval is an admin
// operation; the backend excludes approved leaves from slot generation.
type LeaveService struct {
	client *Client
}

func (s *LeaveService) Request(ctx context.Context, leave DoctorLeave) (*DoctorLeave, error) {
	if leave.DoctorID <= 0 || leave.StartDate == "" || leave.EndDate == "" {
		return nil, errors.New("api: doctor id, start date and end date required")
	}
	var out DoctorLeave
	if err := s.client.invokeJSON(ctx, "doctor-leave", http.MethodPost, "/doctor-leave/request", leave, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeaveService) ListByDoctor(ctx context.Context, doctorID int64) ([]DoctorLeave, error) {
	if doctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out []DoctorLeave
	if err := s.client.invokeJSON(ctx, "doctor-leave", http.MethodGet, fmt.Sprintf("/doctor-leave/doctor/%d", doctorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LeaveService) ListByStatus(ctx context.Context, status string) ([]DoctorLeave, error) {
	if status == "" {
		return nil, errors.New("api: status required")
	}
	var out []DoctorLeave
	if err := s.client.invokeJSON(ctx, "doctor-leave", http.MethodGet, fmt.Sprintf("/doctor-leave/status/%s", status), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LeaveService) Approve(ctx context.Context, id int64, adminNotes string) (*DoctorLeave, error) {
	if id <= 0 {
		return nil, errors.New("api: leave id required")
	}
	payload := map[string]string{"adminNotes": adminNotes}
	var out DoctorLeave
	if err := s.client.invokeJSON(ctx, "doctor-leave", http.MethodPut, fmt.Sprintf("/doctor-leave/%d/approve", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeaveService) Cancel(ctx context.Context, id int64) (*DoctorLeave, error) {
	if id <= 0 {
		return nil, errors.New("api: leave id required")
	}
	var out DoctorLeave
	if err := s.client.invokeJSON(ctx, "doctor-leave", http.MethodPut, fmt.Sprintf("/doctor-leave/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *LeaveService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("api: leave id required")
	}
	return s.client.invokeJSON(ctx, "doctor-leave", http.MethodDelete, fmt.Sprintf("/doctor-leave/%d", id), nil, nil)
}
