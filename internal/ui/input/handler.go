package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sgfview/internal/ui/input/modes"
	"sgfview/internal/ui/input/types"
)

// Handler routes keys to the handler of the current input mode
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		}

		oldMode := h.currentMode
		h.currentMode = changeMode.Mode

		// Text modes start with the value carried by the change, if any
		if h.isTextMode(h.currentMode) {
			h.textInput.Reset()
			if data, ok := changeMode.Data.(string); ok {
				h.textInput.SetValue(data)
				h.textInput.CursorEnd()
			}
		}

		if h.modes[h.currentMode] != nil {
			allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
		}

		if h.isTextMode(h.currentMode) {
			h.textInput.Focus()
			cmd = textinput.Blink
		} else if h.isTextMode(oldMode) {
			h.textInput.Blur()
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeFilter
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
