package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateDoctorMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/doctor/create" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		blob := r.FormValue("doctor")
		var d Doctor
		if err := json.Unmarshal([]byte(blob), &d); err != nil {
			t.Fatalf("doctor part is not JSON: %v", err)
		}
		if d.FirstName != "Asha" {
			t.Fatalf("unexpected doctor part: %+v", d)
		}
		file, header, err := r.FormFile("profilePicture")
		if err != nil {
			t.Fatalf("missing profilePicture part: %v", err)
		}
		defer file.Close()
		if header.Filename != "asha.png" {
			t.Fatalf("unexpected filename: %s", header.Filename)
		}
		d.ID = 11
		_ = json.NewEncoder(w).Encode(d)
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	created, err := c.Doctors.Create(context.Background(),
		Doctor{FirstName: "Asha", LastName: "Rao", Fee: 500},
		strings.NewReader("png-bytes"), "asha.png")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID != 11 {
		t.Fatalf("unexpected id: %d", created.ID)
	}
}

func TestUpdateDoctorWithoutPhoto(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/doctor/11" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		if _, _, err := r.FormFile("profilePicture"); err == nil {
			t.Fatal("photo part should be absent")
		}
		_ = json.NewEncoder(w).Encode(Doctor{ID: 11, FirstName: "Asha"})
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	if _, err := c.Doctors.Update(context.Background(), 11, Doctor{FirstName: "Asha"}, nil, ""); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestReplaceWorkingHours(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/doctor/7/working-hours" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var hours []WorkingHour
		if err := json.NewDecoder(r.Body).Decode(&hours); err != nil {
			t.Fatalf("decode hours: %v", err)
		}
		_ = json.NewEncoder(w).Encode(hours)
	}))
	defer ts.Close()

	c := newTestClient(ts, "tok")
	hours, err := c.Doctors.ReplaceWorkingHours(context.Background(), 7, []WorkingHour{
		{DayOfWeek: "MONDAY", StartTime: "09:00", EndTime: "17:00", Sequence: 1},
	})
	if err != nil {
		t.Fatalf("ReplaceWorkingHours error: %v", err)
	}
	if len(hours) != 1 || hours[0].DayOfWeek != "MONDAY" {
		t.Fatalf("unexpected hours: %+v", hours)
	}
}
