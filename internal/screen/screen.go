package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/ui/layout"
)

// Screen is one page of the TUI. The router owns a stack of them and only
// the top one receives messages.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Navigable is implemented by screens that handle esc themselves instead
// of letting the app pop them.
type Navigable interface {
	CapturesEscape() bool
}
