package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/periodica/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the game styling and a result
// mark for the last submission.
type TextInput struct {
	Model     textinput.Model
	submitted bool
	valid     bool
}

// NewTextInput creates a new focused text input.
func NewTextInput(prompt, placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Typing clears the last result mark.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.submitted = false
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Clear empties the field and drops the result mark.
func (t *TextInput) Clear() {
	t.Model.SetValue("")
	t.submitted = false
}

// Focus gives the field the keyboard.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur releases the keyboard.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the field has the keyboard.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
