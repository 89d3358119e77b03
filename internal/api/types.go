package api

import "time"

// Appointment statuses as reported by the backend. Transitions are driven
// entirely server-side.
const (
	StatusAvailable = "AVAILABLE"
	StatusBooked    = "BOOKED"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
	StatusNoShow    = "NO_SHOW"
	StatusScheduled = "SCHEDULED"
)

// Doctor leave statuses.
const (
	LeavePending   = "PENDING"
	LeaveApproved  = "APPROVED"
	LeaveRejected  = "REJECTED"
	LeaveCancelled = "CANCELLED"
)

// Payment methods.
const (
	PaymentCard = "CARD"
	PaymentCash = "CASH"
)

type Appointment struct {
	ID              int64     `json:"id"`
	DoctorID        int64     `json:"doctorId"`
	PatientID       int64     `json:"patientId,omitempty"`
	AppointmentTime time.Time `json:"appointmentTime"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
}

// Slot is one bookable appointment time unit, as returned by the
// auto-generated ("smart") availability listing.
type Slot struct {
	ID        int64     `json:"id,omitempty"`
	DoctorID  int64     `json:"doctorId,omitempty"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime,omitempty"`
	Status    string    `json:"status,omitempty"`
}

type Doctor struct {
	ID                         int64    `json:"id"`
	Name                       string   `json:"name,omitempty"`
	FullName                   string   `json:"fullName,omitempty"`
	FirstName                  string   `json:"firstName,omitempty"`
	LastName                   string   `json:"lastName,omitempty"`
	Email                      string   `json:"email,omitempty"`
	Phone                      string   `json:"phone,omitempty"`
	Fee                        float64  `json:"fee,omitempty"`
	AppointmentDurationMinutes int      `json:"appointmentDurationMinutes,omitempty"`
	Specializations            []string `json:"specializations,omitempty"`
	UserID                     int64    `json:"userId,omitempty"`
	ProfilePictureURL          string   `json:"profilePictureUrl,omitempty"`
}

type Patient struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
}

type DoctorLeave struct {
	ID         int64  `json:"id"`
	DoctorID   int64  `json:"doctorId"`
	LeaveType  string `json:"leaveType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status,omitempty"`
	ApprovedBy string `json:"approvedBy,omitempty"`
	AdminNotes string `json:"adminNotes,omitempty"`
}

type Payment struct {
	ID            int64   `json:"id,omitempty"`
	AppointmentID int64   `json:"appointmentId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	CardDetails   string  `json:"cardDetails,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Status        string  `json:"status,omitempty"`
}

type WorkingHour struct {
	ID        int64  `json:"id,omitempty"`
	DoctorID  int64  `json:"doctorId,omitempty"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Sequence  int    `json:"sequence,omitempty"`
}

type Specialization struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CreateSlotsRequest asks the backend to create AVAILABLE appointments for a
// doctor over a date range (manual slot creation path).
type CreateSlotsRequest struct {
	DoctorID  int64  `json:"doctorId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

// PaymentRequest creates a payment for an existing appointment.
type PaymentRequest struct {
	AppointmentID int64   `json:"appointmentId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	CardDetails   string  `json:"cardDetails,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// BookWithPaymentRequest books a slot and records its payment in one call.
type BookWithPaymentRequest struct {
	AppointmentID int64   `json:"appointmentId"`
	PatientID     int64   `json:"patientId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	CardDetails   string  `json:"cardDetails,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// ReservationStatus reports whether a slot hold is still active.
type ReservationStatus struct {
	Reserved  bool  `json:"reserved"`
	PatientID int64 `json:"patientId,omitempty"`
}
