package bookingflow

import (
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func TestDoctorDisplayNameResolutionOrder(t *testing.T) {
	cases := []struct {
		name string
		in   api.Doctor
		want string
	}{
		{"name wins", api.Doctor{Name: "Dr. Asha Rao", FullName: "Other"}, "Dr. Asha Rao"},
		{"fullName next", api.Doctor{FullName: "Asha Rao", FirstName: "X"}, "Asha Rao"},
		{"first+last", api.Doctor{FirstName: "Asha", LastName: "Rao"}, "Asha Rao"},
		{"first only", api.Doctor{FirstName: "Asha"}, "Asha"},
		{"email local part", api.Doctor{Email: "asha.rao@clinic.example"}, "asha.rao"},
		{"numeric fallback", api.Doctor{ID: 7}, "Doctor #7"},
		{"whitespace name skipped", api.Doctor{Name: "  ", Email: "asha@x.y"}, "asha"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DoctorDisplayName(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatSlotTime(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if got := FormatSlotTime(at); got != "09:00 AM" {
		t.Fatalf("got %q", got)
	}
	pm := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	if got := FormatSlotTime(pm); got != "02:30 PM" {
		t.Fatalf("got %q", got)
	}
}
