package ui

import (
	"testing"

	"github.com/SheCodesAus/vibelab/internal/models"
)

func TestFieldForm(t *testing.T) {
	t.Run("focus wraps around", func(t *testing.T) {
		form := newLoginForm()

		if form.focus != loginUsername {
			t.Errorf("expected the first field focused, got %d", form.focus)
		}

		form.Next()
		if form.focus != loginPassword || !form.AtLast() {
			t.Errorf("expected the last field focused, got %d", form.focus)
		}

		form.Next()
		if form.focus != loginUsername {
			t.Errorf("expected focus to wrap, got %d", form.focus)
		}
	})

	t.Run("Value trims whitespace", func(t *testing.T) {
		form := newLoginForm()
		form.inputs[loginUsername].SetValue("  ada  ")

		if form.Value(loginUsername) != "ada" {
			t.Errorf("expected trimmed value, got %q", form.Value(loginUsername))
		}
	})

	t.Run("Reset clears and refocuses", func(t *testing.T) {
		form := newLoginForm()
		form.inputs[loginUsername].SetValue("ada")
		form.Next()

		form.Reset()

		if form.Value(loginUsername) != "" || form.focus != loginUsername {
			t.Error("expected an empty form focused on the first field")
		}
	})
}

func TestValidateSignup(t *testing.T) {
	fill := func(username, password, confirm string) *fieldForm {
		form := newSignupForm()
		form.inputs[signupUsername].SetValue(username)
		form.inputs[signupPassword].SetValue(password)
		form.inputs[signupConfirm].SetValue(confirm)
		return &form
	}

	t.Run("valid", func(t *testing.T) {
		if msg := validateSignup(fill("ada", "hunter2", "hunter2")); msg != "" {
			t.Errorf("expected no message, got %q", msg)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		if msg := validateSignup(fill("", "hunter2", "hunter2")); msg != "Username and password are required" {
			t.Errorf("unexpected message: %q", msg)
		}
		if msg := validateSignup(fill("ada", "", "")); msg != "Username and password are required" {
			t.Errorf("unexpected message: %q", msg)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		if msg := validateSignup(fill("ada", "hunter2", "hunter3")); msg != "Passwords do not match" {
			t.Errorf("unexpected message: %q", msg)
		}
	})
}

func TestVibePicker(t *testing.T) {
	picker := newVibePicker()

	if picker.Value() != models.Vibes()[0] {
		t.Errorf("expected the first vibe selected, got %s", picker.Value())
	}

	picker.Prev()
	last := models.Vibes()[len(models.Vibes())-1]
	if picker.Value() != last {
		t.Errorf("expected wrap to %s, got %s", last, picker.Value())
	}

	picker.Next()
	if picker.Value() != models.Vibes()[0] {
		t.Errorf("expected wrap back to the first vibe, got %s", picker.Value())
	}
}
