package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"sgfview/internal/ui/input/types"
)

// FilterMode narrows the file list as the user types
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}

// Enter remembers the query in effect so esc can restore it, and moves
// focus to the list being filtered
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	return append(actions,
		types.BeginFilterAction{Query: ctx.FilterQuery()},
		types.FocusAction{Pane: types.PaneFiles},
	)
}
