package components

import (
	"github.com/abhisek/periodica/internal/ui/theme"
)

// Button is a styled button component. Screens route keys themselves;
// the button only renders its state.
type Button struct {
	Label    string
	Active   bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string, active, disabled bool) Button {
	return Button{
		Label:    label,
		Active:   active,
		Disabled: disabled,
	}
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(b.Label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render(b.Label)
	}
}
