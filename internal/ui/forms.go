package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/SheCodesAus/vibelab/internal/models"
)

// fieldForm is a vertical stack of labelled text inputs with one focused
// field. Shared by the login, signup and create-playlist views.
type fieldForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFieldForm(fields ...formField) fieldForm {
	form := fieldForm{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, field := range fields {
		input := textinput.New()
		input.Placeholder = field.placeholder
		input.CharLimit = 120
		if field.secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		if i == 0 {
			input.Focus()
		}

		form.labels[i] = field.label
		form.inputs[i] = input
	}

	return form
}

type formField struct {
	label       string
	placeholder string
	secret      bool
}

// Next moves focus to the following field, wrapping around.
func (f *fieldForm) Next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// AtLast reports whether the final field is focused.
func (f *fieldForm) AtLast() bool {
	return f.focus == len(f.inputs)-1
}

// Value returns the trimmed text of the field at index i.
func (f *fieldForm) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// Reset clears every field and refocuses the first.
func (f *fieldForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	f.inputs[0].Focus()
}

// Update forwards the message to the focused input.
func (f *fieldForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// View renders the labelled fields, highlighting the focused label.
func (f *fieldForm) View() string {
	var b strings.Builder

	for i, input := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			label = styles.focus.Render(label)
		} else {
			label = styles.dim.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", label, input.View()))
	}

	return b.String()
}

const (
	loginUsername = iota
	loginPassword
)

func newLoginForm() fieldForm {
	return newFieldForm(
		formField{label: "Username", placeholder: "username"},
		formField{label: "Password", secret: true},
	)
}

const (
	signupUsername = iota
	signupName
	signupLastName
	signupPassword
	signupConfirm
)

func newSignupForm() fieldForm {
	return newFieldForm(
		formField{label: "Username", placeholder: "username"},
		formField{label: "First name"},
		formField{label: "Last name"},
		formField{label: "Password", secret: true},
		formField{label: "Confirm password", secret: true},
	)
}

// validateSignup checks the form locally. A mismatch or missing field is
// reported here and nothing is sent to the server.
func validateSignup(f *fieldForm) string {
	if f.Value(signupUsername) == "" || f.Value(signupPassword) == "" {
		return "Username and password are required"
	}
	if f.Value(signupPassword) != f.Value(signupConfirm) {
		return "Passwords do not match"
	}
	return ""
}

const (
	createName = iota
	createDescription
)

func newCreateForm() fieldForm {
	return newFieldForm(
		formField{label: "Name", placeholder: "My playlist"},
		formField{label: "Description"},
	)
}

// vibePicker cycles through the available vibes with left/right.
type vibePicker struct {
	vibes    []models.Vibe
	selected int
}

func newVibePicker() vibePicker {
	return vibePicker{vibes: models.Vibes()}
}

func (v *vibePicker) Prev() {
	v.selected = (v.selected + len(v.vibes) - 1) % len(v.vibes)
}

func (v *vibePicker) Next() {
	v.selected = (v.selected + 1) % len(v.vibes)
}

func (v *vibePicker) Value() models.Vibe {
	return v.vibes[v.selected]
}

func (v *vibePicker) View() string {
	parts := make([]string, len(v.vibes))

	for i, vibe := range v.vibes {
		if i == v.selected {
			parts[i] = styles.focus.Render("[" + string(vibe) + "]")
		} else {
			parts[i] = styles.dim.Render(string(vibe))
		}
	}

	return strings.Join(parts, "  ")
}
