package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Pane          lipgloss.Style
	PaneFocused   lipgloss.Style
	PaneHeader    lipgloss.Style
	RecordTitle   lipgloss.Style
	Alert         lipgloss.Style
	AlertTitle    lipgloss.Style
	Help          lipgloss.Style
	Highlight     lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	ModeLabel     lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241"))

	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Pane:        pane,
		PaneFocused: pane.BorderForeground(lipgloss.Color("99")),
		PaneHeader:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		RecordTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
		AlertTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Help:          lipgloss.NewStyle().Faint(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		ModeLabel:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}
