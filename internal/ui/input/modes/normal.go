package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sgfview/internal/ui/input/types"
)

const ggTimeout = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	onBoard := ctx.FocusedPane() == types.PaneBoard

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		return nil, false

	case tea.KeyTab:
		return []types.Action{types.FocusAction{Pane: ctx.FocusedPane().Next()}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.FocusAction{Pane: ctx.FocusedPane().Prev()}}, true

	case tea.KeyLeft, tea.KeyRight:
		// Move stepping works from every pane; the lists have no horizontal axis
		return []types.Action{types.BoardKeyAction{Key: msg}}, true

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		if onBoard {
			return []types.Action{types.BoardKeyAction{Key: msg}}, true
		}
		return []types.Action{types.NavigateAction{Direction: direction(msg.Type)}}, true

	case tea.KeyEnter:
		if onBoard {
			return nil, false
		}
		return []types.Action{types.SelectAction{}}, true
	}

	switch msg.String() {
	case "j":
		if onBoard {
			return []types.Action{types.BoardKeyAction{Key: msg}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		if onBoard {
			return []types.Action{types.BoardKeyAction{Key: msg}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterQuery()}}, true

	case "m":
		return []types.Action{types.ToggleModeAction{}}, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "v":
		if ctx.HasRecord() {
			return []types.Action{types.ViewRawAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < ggTimeout {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		m.lastKeyWasG = false
	}

	return nil, false
}

func direction(k tea.KeyType) string {
	switch k {
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyPgUp:
		return "pageup"
	case tea.KeyPgDown:
		return "pagedown"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	}
	return ""
}
