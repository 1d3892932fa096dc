package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// FocusAction moves focus to Pane
type FocusAction struct {
	Pane Pane
}

func (a FocusAction) Type() string { return "focus" }

// SelectAction selects the month or opens the file under the cursor
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

// BoardKeyAction forwards a key to the board player
type BoardKeyAction struct {
	Key tea.KeyMsg
}

func (a BoardKeyAction) Type() string { return "board_key" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// BeginFilterAction is emitted on entering filter mode with the query in effect
type BeginFilterAction struct {
	Query string
}

func (a BeginFilterAction) Type() string { return "begin_filter" }

// Command actions
type ToggleModeAction struct{}

func (a ToggleModeAction) Type() string { return "toggle_mode" }

type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type ViewRawAction struct{}

func (a ViewRawAction) Type() string { return "view_raw" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type DismissAlertAction struct{}

func (a DismissAlertAction) Type() string { return "dismiss_alert" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
