package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Navigation", []helpEntry{
		{"tab / shift+tab", "Move focus between months, records and board"},
		{"↑/↓, j/k", "Move the cursor"},
		{"PgUp/PgDn", "Page up/down"},
		{"gg/G", "Go to top/bottom"},
		{"enter", "Select month / open record"},
	}},
	{"Board", []helpEntry{
		{"←/→", "Previous/next move"},
		{"home/end", "First/last move (board focused)"},
		{"mouse wheel", "Step through moves"},
		{"↑/↓", "Scroll the comment (board focused)"},
	}},
	{"Records", []helpEntry{
		{"/", "Filter record names, enter keeps it, esc restores"},
		{"m", "Toggle between the main-line and variation trees"},
		{"r", "Reload the collection"},
		{"v", "View the raw record"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// renderHelpContent renders the help information
func (r *HelpRenderer) renderHelpContent(modes string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	width := 0
	for _, s := range helpSections {
		for _, e := range s.entries {
			width = max(width, lipgloss.Width(e.keys))
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("sgfview Help"))
	help.WriteString("\n")

	for _, s := range helpSections {
		help.WriteString(sectionStyle.Render(s.title))
		help.WriteString("\n")
		for _, e := range s.entries {
			pad := strings.Repeat(" ", width-lipgloss.Width(e.keys))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(e.keys), pad, descStyle.Render(e.desc)))
		}
	}

	if modes != "" {
		filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
		help.WriteString("\n")
		help.WriteString(filterStyle.Render("  Trees: " + modes))
		help.WriteString("\n")
	}

	return help.String()
}
