package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSmartAvailableSlots(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/appointments/slots/smart/doctor/7/date/2024-06-01" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"startTime": "2024-06-01T09:00:00Z", "endTime": "2024-06-01T09:30:00Z"},
			{"startTime": "2024-06-01T09:30:00Z", "endTime": "2024-06-01T10:00:00Z"},
		})
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	slots, err := c.Appointments.SmartAvailableSlots(context.Background(), 7, "2024-06-01")
	if err != nil {
		t.Fatalf("SmartAvailableSlots error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("unexpected slot count: %d", len(slots))
	}
	want := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(want) {
		t.Fatalf("unexpected first slot start: %s", slots[0].StartTime)
	}
}

func TestUpdateStatusSendsPatch(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(Appointment{ID: 12, Status: StatusConfirmed})
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	appt, err := c.Appointments.UpdateStatus(context.Background(), 12, StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", gotMethod)
	}
	if gotBody["status"] != StatusConfirmed {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	if appt.Status != StatusConfirmed {
		t.Fatalf("unexpected status: %s", appt.Status)
	}
}

func TestBookUsesPathParameters(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/appointments/book/42/patient/9" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Appointment{ID: 42, PatientID: 9, Status: StatusBooked})
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	appt, err := c.Appointments.Book(context.Background(), 42, 9)
	if err != nil {
		t.Fatalf("Book error: %v", err)
	}
	if appt.Status != StatusBooked {
		t.Fatalf("unexpected status: %s", appt.Status)
	}
}

func TestDeleteSlot(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/appointments/slots/3/doctor/7" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	if err := c.Appointments.DeleteSlot(context.Background(), 3, 7); err != nil {
		t.Fatalf("DeleteSlot error: %v", err)
	}
}
