package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ReservationService wraps the short-lived slot holds the backend tracks
// while a patient completes payment. The server owns the real expiry; clients
// only approximate it.
type ReservationService struct {
	client *Client
}

// Reserve places a hold on a slot. A 409 (or SLOT_UNAVAILABLE) response means
// another patient holds it; detect with IsConflict.
func (s *ReservationService) Reserve(ctx context.Context, appointmentID, patientID int64) error {
	if appointmentID <= 0 || patientID <= 0 {
		return errors.New("api: appointment id and patient id required")
	}
	return s.client.invokeJSON(ctx, "reservations", http.MethodPost, fmt.Sprintf("/appointments/reservations/reserve/%d/patient/%d", appointmentID, patientID), nil, nil)
}

// Release drops a hold. Callers treat failures as non-fatal; the server-side
// TTL expires the hold regardless.
func (s *ReservationService) Release(ctx context.Context, appointmentID, patientID int64) error {
	if appointmentID <= 0 || patientID <= 0 {
		return errors.New("api: appointment id and patient id required")
	}
	return s.client.invokeJSON(ctx, "reservations", http.MethodDelete, fmt.Sprintf("/appointments/reservations/release/%d/patient/%d", appointmentID, patientID), nil, nil)
}

func (s *ReservationService) Check(ctx context.Context, appointmentID, patientID int64) (*ReservationStatus, error) {
	if appointmentID <= 0 || patientID <= 0 {
		return nil, errors.New("api: appointment id and patient id required")
	}
	var out ReservationStatus
	if err := s.client.invokeJSON(ctx, "reservations", http.MethodGet, fmt.Sprintf("/appointments/reservations/check/%d/patient/%d", appointmentID, patientID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
