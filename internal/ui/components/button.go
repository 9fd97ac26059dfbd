package components

import (
	"github.com/abhisek/tutor/internal/ui/theme"
)

// Button is a styled button component.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string) Button {
	return Button{Label: label}
}

// View renders the button. A disabled button shows busy instead of its label.
func (b Button) View(busy string) string {
	if b.Disabled {
		return theme.ButtonInactive.Render(" " + busy + " ")
	}
	label := " ▸ " + b.Label + " "
	if b.Focused {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
