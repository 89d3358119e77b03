// Package bookingflow coordinates the slot reservation and payment
// choreography: a slot is held for a bounded window while the patient pays,
// and the hold is converted into a confirmed appointment or released. The
// backend is authoritative for the real hold expiry; the deadline tracked
// here only approximates it for display and defensive auto-release.
package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const defaultHoldTTL = 5 * time.Minute

// State of a single booking flow.
type State int

const (
	StateIdle State = iota
	StateReserved
	StatePaying
	StateConfirmed
	StateReleased
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReserved:
		return "reserved"
	case StatePaying:
		return "paying"
	case StateConfirmed:
		return "confirmed"
	case StateReleased:
		return "released"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Mode selects how payment completion talks to the backend.
type Mode int

const (
	// ModeBookWithPayment books and pays in a single backend call (the
	// manual-slot flow).
	ModeBookWithPayment Mode = iota
	// ModeConfirmThenPay confirms the reserved appointment, then creates the
	// payment as a second call (the auto-generated-slot flow).
	ModeConfirmThenPay
)

var (
	// ErrSlotTaken means another patient holds or booked the slot.
	ErrSlotTaken = errors.New("bookingflow: slot is being booked by someone else")
	// ErrHoldExpired means the hold deadline passed before payment completed.
	ErrHoldExpired = errors.New("bookingflow: reservation hold expired")
	// ErrBusy means a completion is already in flight.
	ErrBusy = errors.New("bookingflow: completion already in progress")
)

// Config wires a Flow.
type Config struct {
	Client  *api.Client
	Logger  *logging.Logger
	Metrics *metrics.BookingMetrics
	HoldTTL time.Duration
	Mode    Mode
	Now     func() time.Time
}

// Flow is a single reservation/payment attempt. It is safe for concurrent
// use; a Flow is not reusable after reaching a terminal state.
type Flow struct {
	client  *api.Client
	logger  *logging.Logger
	metrics *metrics.BookingMetrics
	ttl     time.Duration
	mode    Mode
	now     func() time.Time

	mu            sync.Mutex
	state         State
	starting      bool
	appointmentID int64
	patientID     int64
	placeholderID int64
	deadline      time.Time
	compensated   bool
}

// New creates a Flow in the Idle state.
func New(cfg Config) *Flow {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.HoldTTL
	if ttl <= 0 {
		ttl = defaultHoldTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Flow{
		client:  cfg.Client,
		logger:  logger,
		metrics: cfg.Metrics,
		ttl:     ttl,
		mode:    cfg.Mode,
		now:     now,
	}
}

// Start resolves the caller's patient record and places a hold on an
// existing AVAILABLE appointment. On contention it returns ErrSlotTaken and
// the flow stays Idle — the payment stage never begins.
func (f *Flow) Start(ctx context.Context, appointmentID, userID int64) error {
	patient, err := f.client.Patients.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("bookingflow: resolve patient: %w", err)
	}
	return f.reserve(ctx, appointmentID, patient.ID, 0)
}

// StartSmart books from a backend-generated candidate slot: it creates a
// placeholder appointment for the slot, then holds it. The placeholder is
// deleted again if the flow does not complete.
func (f *Flow) StartSmart(ctx context.Context, slot api.Slot, userID int64) error {
	patient, err := f.client.Patients.GetByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("bookingflow: resolve patient: %w", err)
	}
	appt, err := f.client.Appointments.Create(ctx, api.Appointment{
		DoctorID:        slot.DoctorID,
		AppointmentTime: slot.StartTime,
		Status:          api.StatusAvailable,
	})
	if err != nil {
		if api.IsConflict(err) {
			f.metrics.ObserveReservation("conflict")
			return ErrSlotTaken
		}
		return fmt.Errorf("bookingflow: create placeholder: %w", err)
	}
	if err := f.reserve(ctx, appt.ID, patient.ID, appt.ID); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			f.deletePlaceholder(ctx, appt.ID)
		}
		return err
	}
	return nil
}

func (f *Flow) reserve(ctx context.Context, appointmentID, patientID, placeholderID int64) error {
	// The starting marker stays held across the Reserve call so a second
	// concurrent Start cannot pass the Idle check and double-reserve.
	f.mu.Lock()
	if f.state != StateIdle || f.starting {
		state := f.state
		f.mu.Unlock()
		return fmt.Errorf("bookingflow: cannot start from state %s", state)
	}
	f.starting = true
	f.mu.Unlock()

	if err := f.client.Reservations.Reserve(ctx, appointmentID, patientID); err != nil {
		f.mu.Lock()
		f.starting = false
		f.mu.Unlock()
		if api.IsConflict(err) {
			f.metrics.ObserveReservation("conflict")
			f.logger.Info("slot contention on reserve", "appointment_id", appointmentID)
			return ErrSlotTaken
		}
		return fmt.Errorf("bookingflow: reserve: %w", err)
	}

	f.mu.Lock()
	f.starting = false
	f.state = StateReserved
	f.appointmentID = appointmentID
	f.patientID = patientID
	f.placeholderID = placeholderID
	f.deadline = f.now().Add(f.ttl)
	f.mu.Unlock()

	f.metrics.ObserveReservation("reserved")
	f.logger.Info("slot reserved",
		"appointment_id", appointmentID,
		"patient_id", patientID,
		"hold_ttl", f.ttl.String(),
	)
	return nil
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Deadline returns the advisory hold deadline (zero before Start).
func (f *Flow) Deadline() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deadline
}

// Remaining returns how much of the hold window is left, clamped at zero.
func (f *Flow) Remaining() time.Duration {
	f.mu.Lock()
	deadline := f.deadline
	f.mu.Unlock()
	if deadline.IsZero() {
		return 0
	}
	left := deadline.Sub(f.now())
	if left < 0 {
		return 0
	}
	return left
}

// Watch blocks until the hold deadline or ctx cancellation, releasing the
// hold if the deadline fires while the flow is still Reserved. Run it in its
// own goroutine; completion or Close cancels it via ctx.
func (f *Flow) Watch(ctx context.Context) {
	f.mu.Lock()
	deadline := f.deadline
	state := f.state
	f.mu.Unlock()
	if state != StateReserved {
		return
	}
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
		f.expire(context.WithoutCancel(ctx))
	}
}

func (f *Flow) expire(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateReserved {
		f.mu.Unlock()
		return
	}
	f.state = StateExpired
	f.mu.Unlock()
	f.metrics.ObserveReservation("expired")
	f.logger.Info("reservation hold expired", "appointment_id", f.appointmentID)
	f.compensate(ctx)
}

// CompleteCash finishes the flow with a CASH payment.
func (f *Flow) CompleteCash(ctx context.Context, amount float64, note string) (*api.Payment, error) {
	if note == "" {
		note = "Payment to be collected at the clinic"
	}
	return f.complete(ctx, api.PaymentCash, amount, "", note)
}

// CompleteCard finishes the flow with a CARD payment. Card input is checked
// for shape only and reduced to its masked form; no real card processing
// happens anywhere in this system.
func (f *Flow) CompleteCard(ctx context.Context, amount float64, card CardInput) (*api.Payment, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return f.complete(ctx, api.PaymentCard, amount, card.Masked(), "")
}

func (f *Flow) complete(ctx context.Context, method string, amount float64, cardDetails, note string) (*api.Payment, error) {
	f.mu.Lock()
	switch f.state {
	case StatePaying:
		f.mu.Unlock()
		return nil, ErrBusy
	case StateExpired:
		f.mu.Unlock()
		return nil, ErrHoldExpired
	case StateReserved:
		// proceed
	default:
		state := f.state
		f.mu.Unlock()
		return nil, fmt.Errorf("bookingflow: cannot complete from state %s", state)
	}
	if f.now().After(f.deadline) {
		f.state = StateExpired
		f.mu.Unlock()
		f.metrics.ObserveReservation("expired")
		f.compensate(ctx)
		return nil, ErrHoldExpired
	}
	f.state = StatePaying
	appointmentID := f.appointmentID
	patientID := f.patientID
	f.mu.Unlock()

	payment, err := f.submitPayment(ctx, appointmentID, patientID, method, amount, cardDetails, note)
	if err != nil {
		if api.IsConflict(err) {
			f.setState(StateReleased)
			f.metrics.ObserveReservation("conflict")
			f.metrics.ObservePayment(method, "conflict")
			f.logger.Info("slot taken during payment", "appointment_id", appointmentID)
			f.compensate(ctx)
			return nil, ErrSlotTaken
		}
		// Non-conflict failure: the hold is still ours, allow another attempt
		// within the window.
		f.setState(StateReserved)
		f.metrics.ObservePayment(method, "failed")
		return nil, err
	}

	f.setState(StateConfirmed)
	f.metrics.ObserveReservation("confirmed")
	f.metrics.ObservePayment(method, "created")
	f.logger.Info("booking confirmed",
		"appointment_id", appointmentID,
		"payment_method", method,
		"amount", amount,
	)
	return payment, nil
}

func (f *Flow) submitPayment(ctx context.Context, appointmentID, patientID int64, method string, amount float64, cardDetails, note string) (*api.Payment, error) {
	switch f.mode {
	case ModeConfirmThenPay:
		if _, err := f.client.Appointments.UpdateStatus(ctx, appointmentID, api.StatusConfirmed); err != nil {
			return nil, err
		}
		return f.client.Payments.Create(ctx, api.PaymentRequest{
			AppointmentID: appointmentID,
			PaymentMethod: method,
			Amount:        amount,
			CardDetails:   cardDetails,
			Notes:         note,
		})
	default:
		return f.client.Payments.BookWithPayment(ctx, api.BookWithPaymentRequest{
			AppointmentID: appointmentID,
			PatientID:     patientID,
			PaymentMethod: method,
			Amount:        amount,
			CardDetails:   cardDetails,
			Notes:         note,
		})
	}
}

// Close abandons the flow before payment, releasing the hold and deleting
// any placeholder appointment. It is idempotent and never fails the caller:
// compensations are best-effort, the server-side TTL is the backstop.
func (f *Flow) Close(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateReserved {
		f.mu.Unlock()
		return
	}
	f.state = StateReleased
	f.mu.Unlock()
	f.metrics.ObserveReservation("released")
	f.compensate(ctx)
}

// compensate releases the reservation and deletes the placeholder
// appointment, at most once per flow. Failures are logged and swallowed.
func (f *Flow) compensate(ctx context.Context) {
	f.mu.Lock()
	if f.compensated {
		f.mu.Unlock()
		return
	}
	f.compensated = true
	appointmentID := f.appointmentID
	patientID := f.patientID
	placeholderID := f.placeholderID
	f.mu.Unlock()

	if appointmentID == 0 {
		return
	}
	if err := f.client.Reservations.Release(ctx, appointmentID, patientID); err != nil {
		f.logger.Warn("compensating release failed",
			"appointment_id", appointmentID,
			"error", err,
		)
	}
	if placeholderID != 0 {
		f.deletePlaceholder(ctx, placeholderID)
	}
}

func (f *Flow) deletePlaceholder(ctx context.Context, id int64) {
	if err := f.client.Appointments.Delete(ctx, id); err != nil {
		f.logger.Warn("placeholder cleanup failed", "appointment_id", id, "error", err)
	}
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}
