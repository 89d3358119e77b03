package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		if l := New(level); l == nil || l.Logger == nil {
			t.Fatalf("New(%q) returned incomplete logger", level)
		}
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)
	l.Info("session opened", "user_id", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "session opened" {
		t.Fatalf("unexpected msg: %v", rec["msg"])
	}
	if rec["user_id"] != float64(42) {
		t.Fatalf("unexpected user_id: %v", rec["user_id"])
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("info", &buf)
	l.Debug("noise")
	if strings.Contains(buf.String(), "noise") {
		t.Fatalf("debug record emitted at info level: %s", buf.String())
	}
}
