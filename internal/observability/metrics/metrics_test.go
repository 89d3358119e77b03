package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveRequest("appointments", "GET", "2xx", 0.05)
	m.ObserveReservation("reserved")
	m.ObserveReservation("conflict")
	m.ObservePayment("CASH", "created")
}

func TestHandlerExportsObservedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveReservation("reserved")
	m.ObservePayment("CASH", "created")

	ts := httptest.NewServer(Handler(reg))
	defer ts.Close()
	resp, err := ts.Client().Get(ts.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`clinicdesk_booking_reservations_total{outcome="reserved"} 1`,
		`clinicdesk_booking_payments_total{method="CASH",status="created"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveRequest("appointments", "GET", "2xx", 0.1)
	m.ObserveReservation("expired")
	m.ObservePayment("CARD", "failed")
}
