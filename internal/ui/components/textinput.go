package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// AnswerInput wraps bubbles/textinput and only accepts the characters a
// numeric answer can contain: digits, spaces and the R of a remainder.
type AnswerInput struct {
	Model textinput.Model
}

// NewAnswerInput creates a focused answer input.
func NewAnswerInput(placeholder string, limit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return textinput.Blink
}

// Accepts reports whether a printable key may be typed into the input.
func Accepts(text string) bool {
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9', r == ' ', r == 'r', r == 'R':
		default:
			return false
		}
	}
	return true
}

// Update handles messages. Printable keys outside the answer alphabet are
// dropped so screens can bind them as shortcuts.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" && !Accepts(kmsg.Text) {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input.
func (a AnswerInput) View() string {
	return a.Model.View()
}

// Value returns the trimmed input.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.Model.Value())
}

// Reset clears the input.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
}
