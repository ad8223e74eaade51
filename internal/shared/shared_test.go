package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf)
	logger.Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output, got %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	t.Run("writes to the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "vibelab.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		logger.Info("tui started")
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := NewFileLogger(""); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()

	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected a uuid string, got %q", a)
	}
}

func TestGenerateState(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(state) < 32 {
		t.Errorf("expected at least 32 characters, got %d", len(state))
	}
	if strings.ContainsAny(state, "+/=") {
		t.Errorf("expected URL-safe encoding, got %q", state)
	}

	other, _ := GenerateState()
	if state == other {
		t.Error("expected unique state values")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]string{"name": "Rainy Day"}

	compact, err := MarshalJSON(payload, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Errorf("expected compact output, got %q", compact)
	}

	pretty, err := MarshalJSON(payload, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Errorf("expected indented output, got %q", pretty)
	}
}

func TestVisibilityString(t *testing.T) {
	if VisibilityString(true) != "Open" {
		t.Error("expected Open")
	}
	if VisibilityString(false) != "Private" {
		t.Error("expected Private")
	}
}
