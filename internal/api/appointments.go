package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// AppointmentService wraps the /appointments endpoints, including both slot
// families: manually created AVAILABLE appointments and backend-generated
// ("smart") candidate slots.
type AppointmentService struct {
	client *Client
}

func (s *AppointmentService) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, "/appointments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*Appointment, error) {
	if id <= 0 {
		return nil, errors.New("api: appointment id required")
	}
	var out Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, fmt.Sprintf("/appointments/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) Create(ctx context.Context, appt Appointment) (*Appointment, error) {
	if appt.DoctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodPost, "/appointments", appt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) Update(ctx context.Context, id int64, appt Appointment) (*Appointment, error) {
	if id <= 0 {
		return nil, errors.New("api: appointment id required")
	}
	var out Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodPut, fmt.Sprintf("/appointments/%d", id), appt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("api: appointment id required")
	}
	return s.client.invokeJSON(ctx, "appointments", http.MethodDelete, fmt.Sprintf("/appointments/%d", id), nil, nil)
}

func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status string) (*Appointment, error) {
	if id <= 0 {
		return nil, errors.New("api: appointment id required")
	}
	if status == "" {
		return nil, errors.New("api: status required")
	}
	var out Appointment
	payload := map[string]string{"status": status}
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodPatch, fmt.Sprintf("/appointments/%d/status", id), payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID int64) ([]Appointment, error) {
	if doctorID <= 0 {
		return nil, errors.New("api: doctor id required")
	}
	var out []Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, fmt.Sprintf("/appointments/doctor/%d", doctorID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDoctorAndDate lists a doctor's appointments on a date (YYYY-MM-DD).
func (s *AppointmentService) ListByDoctorAndDate(ctx context.Context, doctorID int64, date string) ([]Appointment, error) {
	if doctorID <= 0 || date == "" {
		return nil, errors.New("api: doctor id and date required")
	}
	var out []Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, fmt.Sprintf("/appointments/doctor/%d/date/%s", doctorID, date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) CreateSlots(ctx context.Context, req CreateSlotsRequest) ([]Appointment, error) {
	if req.DoctorID <= 0 || req.StartDate == "" {
		return nil, errors.New("api: doctor id and start date required")
	}
	var out []Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodPost, "/appointments/slots", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) DeleteSlot(ctx context.Context, id, doctorID int64) error {
	if id <= 0 || doctorID <= 0 {
		return errors.New("api: slot id and doctor id required")
	}
	return s.client.invokeJSON(ctx, "appointments", http.MethodDelete, fmt.Sprintf("/appointments/slots/%d/doctor/%d", id, doctorID), nil, nil)
}

// AvailableSlots lists manually created AVAILABLE appointments for a doctor
// on a date.
func (s *AppointmentService) AvailableSlots(ctx context.Context, doctorID int64, date string) ([]Appointment, error) {
	if doctorID <= 0 || date == "" {
		return nil, errors.New("api: doctor id and date required")
	}
	var out []Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, fmt.Sprintf("/appointments/slots/available/doctor/%d/date/%s", doctorID, date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SmartAvailableSlots lists backend-generated candidate slots derived from the
// doctor's working hours minus approved leaves.
func (s *AppointmentService) SmartAvailableSlots(ctx context.Context, doctorID int64, date string) ([]Slot, error) {
	if doctorID <= 0 || date == "" {
		return nil, errors.New("api: doctor id and date required")
	}
	var out []Slot
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodGet, fmt.Sprintf("/appointments/slots/smart/doctor/%d/date/%s", doctorID, date), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AppointmentService) Book(ctx context.Context, appointmentID, patientID int64) (*Appointment, error) {
	if appointmentID <= 0 || patientID <= 0 {
		return nil, errors.New("api: appointment id and patient id required")
	}
	var out Appointment
	if err := s.client.invokeJSON(ctx, "appointments", http.MethodPost, fmt.Sprintf("/appointments/book/%d/patient/%d", appointmentID, patientID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
