package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// PaymentService wraps the /payments endpoints. The client never sends raw
// card data; CardDetails is the masked display string only.
type PaymentService struct {
	client *Client
}

func (s *PaymentService) Create(ctx context.Context, req PaymentRequest) (*Payment, error) {
	if req.AppointmentID <= 0 {
		return nil, errors.New("api: appointment id required")
	}
	if req.PaymentMethod != PaymentCard && req.PaymentMethod != PaymentCash {
		return nil, errors.New("api: payment method must be CARD or CASH")
	}
	var out Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodPost, "/payments", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookWithPayment books a slot and records its payment atomically server-side
// (the simple booking flow).
func (s *PaymentService) BookWithPayment(ctx context.Context, req BookWithPaymentRequest) (*Payment, error) {
	if req.AppointmentID <= 0 || req.PatientID <= 0 {
		return nil, errors.New("api: appointment id and patient id required")
	}
	if req.PaymentMethod != PaymentCard && req.PaymentMethod != PaymentCash {
		return nil, errors.New("api: payment method must be CARD or CASH")
	}
	var out Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodPost, "/payments/book-with-payment", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*Payment, error) {
	if id <= 0 {
		return nil, errors.New("api: payment id required")
	}
	var out Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) GetByAppointment(ctx context.Context, appointmentID int64) (*Payment, error) {
	if appointmentID <= 0 {
		return nil, errors.New("api: appointment id required")
	}
	var out Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/appointment/%d", appointmentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) ListByPatient(ctx context.Context, patientID int64) ([]Payment, error) {
	if patientID <= 0 {
		return nil, errors.New("api: patient id required")
	}
	var out []Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/patient/%d", patientID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PaymentService) ListByDoctor(ctx context.Context, doctorID int64) ([]Payment, error) {
	if doctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out []Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodGet, fmt.Sprintf("/payments/doctor/%d", doctorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PaymentService) Cancel(ctx context.Context, id int64) (*Payment, error) {
	if id <= 0 {
		return nil, errors.New("api: payment id required")
	}
	var out Payment
	if err := s.client.invokeJSON(ctx, "payments", http.MethodPatch, fmt.Sprintf("/payments/%d/cancel", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
