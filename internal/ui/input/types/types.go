package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
)

// Pane identifies a focusable region of the screen
type Pane int

const (
	PaneMonths Pane = iota
	PaneFiles
	PaneBoard
	paneCount
)

// Next returns the pane tab moves to
func (p Pane) Next() Pane { return (p + 1) % paneCount }

// Prev returns the pane shift+tab moves to
func (p Pane) Prev() Pane { return (p + paneCount - 1) % paneCount }

func (p Pane) String() string {
	switch p {
	case PaneMonths:
		return "months"
	case PaneFiles:
		return "files"
	case PaneBoard:
		return "board"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	FocusedPane() Pane
	HasRecord() bool
	FilterQuery() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
