package ui

import "sgfview/internal/navigator"

// outcomeMsg carries the result of an effect back to the update loop
type outcomeMsg struct {
	outcome navigator.Outcome
}

// pagerExitMsg reports how the external pager ended
type pagerExitMsg struct {
	err error
}

// clearStatusMsg clears the status message
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
