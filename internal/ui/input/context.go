package input

import "sgfview/internal/ui/input/types"

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Focus  types.Pane
	Record bool
	Query  string
}

// FocusedPane returns the pane holding focus
func (c *ModelContext) FocusedPane() types.Pane {
	return c.Focus
}

// HasRecord reports whether a record is open
func (c *ModelContext) HasRecord() bool {
	return c.Record
}

// FilterQuery returns the file filter in effect
func (c *ModelContext) FilterQuery() string {
	return c.Query
}
