package bookingflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// DoctorDisplayName resolves a presentable name from the backend's
// duck-typed doctor payloads. Resolution order, applied once here rather
// than repeated ad hoc: name, fullName, firstName+lastName, the email local
// part, then a numeric fallback.
func DoctorDisplayName(d api.Doctor) string {
	if name := strings.TrimSpace(d.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(d.FullName); name != "" {
		return name
	}
	full := strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
	if full != "" {
		return full
	}
	if at := strings.Index(d.Email, "@"); at > 0 {
		return d.Email[:at]
	}
	return fmt.Sprintf("Doctor #%d", d.ID)
}

// FormatSlotTime renders a slot start for user-facing confirmation text,
// e.g. "09:00 AM".
func FormatSlotTime(t time.Time) string {
	return t.Format("03:04 PM")
}
