package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert draws message as a modal box in the middle of the screen.
// The modal replaces the screen until it is dismissed.
func (pr *PopupRenderer) RenderAlert(message string, height, width int) string {
	body := pr.styles.AlertTitle.Render("Error") + "\n\n" +
		message + "\n\n" +
		pr.styles.Dim.Render("enter/esc to dismiss")

	// Keep a small margin around the box
	maxW := max(20, width-6)
	style := pr.styles.Alert
	if lipgloss.Width(style.Render(body)) > maxW {
		style = style.Width(maxW - style.GetHorizontalFrameSize())
	}
	box := style.Render(body)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
