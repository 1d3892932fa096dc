package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sgfview/internal/listing"
	"sgfview/internal/navigator"
	"sgfview/internal/ui/input/types"
)

const (
	monthsWidth   = 9
	minFilesWidth = 24
	maxFilesWidth = 48
	// title line, status line and help line
	chromeLines = 3
	// top and bottom pane borders
	borderLines = 2
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Nav         navigator.State
	Focus       types.Pane
	MonthCursor int
	FileCursor  int

	Filtering   bool
	FilterInput string // rendered text input while filtering

	Spinner       string
	Board         string // rendered player
	StatusMessage string
	HelpLine      string
}

// Layout is how the screen is split between the three panes. Widths and
// height are inner sizes, borders excluded.
type Layout struct {
	MonthsWidth int
	FilesWidth  int
	BoardWidth  int
	BodyHeight  int
}

// NewLayout splits a width x height terminal
func NewLayout(width, height int) Layout {
	files := min(maxFilesWidth, max(minFilesWidth, width/3))
	// Each pane spends two columns on its border
	board := max(0, width-monthsWidth-files-6)
	return Layout{
		MonthsWidth: monthsWidth,
		FilesWidth:  files,
		BoardWidth:  board,
		BodyHeight:  max(1, height-chromeLines-borderLines),
	}
}

// BoardSize is the area left for the player below the record title
func (l Layout) BoardSize() (int, int) {
	return l.BoardWidth, max(1, l.BodyHeight-1)
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Nav.Alert != "" {
		return r.popupRender.RenderAlert(state.Nav.Alert, state.Height, state.Width)
	}

	layout := NewLayout(state.Width, state.Height)

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	months := r.renderPane(state.Focus == types.PaneMonths, layout.MonthsWidth, layout.BodyHeight,
		r.renderMonths(state, layout))
	files := r.renderPane(state.Focus == types.PaneFiles, layout.FilesWidth, layout.BodyHeight,
		r.renderFiles(state, layout))
	board := r.renderPane(state.Focus == types.PaneBoard, layout.BoardWidth, layout.BodyHeight,
		r.renderBoard(state, layout))
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, months, files, board))
	content.WriteString("\n")

	content.WriteString(r.renderStatusBar(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	return content.String()
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("sgfview")

	var right []string
	if state.Nav.Phase.Loading() {
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("%s %s", state.Spinner, navigator.LoadingMessage)))
	}
	if state.Nav.Query != "" && !state.Filtering {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.Nav.Query)))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	padding := state.Width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) renderPane(focused bool, width, height int, body string) string {
	style := r.styles.Pane
	if focused {
		style = r.styles.PaneFocused
	}
	return style.Width(width).Height(height).MaxHeight(height + borderLines).Render(body)
}

func (r *Renderer) renderMonths(state ViewState, layout Layout) string {
	header := r.styles.PaneHeader.Render("Months")
	if state.Nav.MonthsMessage != "" {
		return header + "\n" + r.message(ansi.Truncate(state.Nav.MonthsMessage, layout.MonthsWidth, "…"), layout.MonthsWidth)
	}
	items := r.renderList(state.Nav.Months, state.Nav.Month, state.MonthCursor,
		state.Focus == types.PaneMonths, layout.MonthsWidth, layout.BodyHeight-1)
	return header + "\n" + items
}

func (r *Renderer) renderFiles(state ViewState, layout Layout) string {
	var header string
	switch {
	case state.Filtering:
		header = r.styles.Filter.Render("Filter: ") + state.FilterInput
	case state.Nav.Query != "":
		header = r.styles.Filter.Render("Filter: " + state.Nav.Query)
	default:
		header = r.styles.PaneHeader.Render("Records")
	}
	header = ansi.Truncate(header, layout.FilesWidth, "…")

	if state.Nav.FilesMessage != "" {
		return header + "\n" + r.message(state.Nav.FilesMessage, layout.FilesWidth)
	}
	items := r.renderList(state.Nav.Visible, state.Nav.File, state.FileCursor,
		state.Focus == types.PaneFiles, layout.FilesWidth, layout.BodyHeight-1)
	return header + "\n" + items
}

func (r *Renderer) renderBoard(state ViewState, layout Layout) string {
	title := state.Nav.Title
	if title == "" {
		title = r.styles.Dim.Render("no record selected")
	} else {
		title = r.styles.RecordTitle.Render(title)
	}
	return ansi.Truncate(title, layout.BoardWidth, "…") + "\n" + state.Board
}

func (r *Renderer) message(text string, width int) string {
	style := r.styles.Dim
	if strings.HasPrefix(text, "cannot") {
		style = r.styles.StatusError
	}
	return style.Width(width).Render(text)
}

// renderList draws the window of items that keeps the cursor visible.
// The cursor line is marked and the selected entry highlighted.
func (r *Renderer) renderList(items []string, selected string, cursor int, focused bool, width, height int) string {
	if len(items) == 0 || height <= 0 {
		return ""
	}

	offset := 0
	if cursor >= height {
		offset = cursor - height + 1
	}
	end := min(len(items), offset+height)

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		prefix := "  "
		if i == cursor {
			prefix = "> "
		}
		line := ansi.Truncate(prefix+listing.DisplayName(items[i]), width, "…")
		if items[i] == selected {
			line = r.styles.Highlight.Render(line)
		}
		if i == cursor && focused {
			line = r.styles.SelectionBg.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatusBar(state ViewState) string {
	parts := []string{r.styles.ModeLabel.Render(state.Nav.ModeLabel)}
	if state.Nav.MonthHint != "" {
		parts = append(parts, r.styles.Status.Render(state.Nav.MonthHint))
	}
	if state.Nav.Phase.Loading() {
		parts = append(parts, r.styles.StatusLoading.Render(state.Spinner))
	}
	if state.Nav.Phase == navigator.Error {
		// The panes are too narrow for a full location
		for _, msg := range []string{state.Nav.MonthsMessage, state.Nav.FilesMessage} {
			if msg != "" && msg != navigator.LoadingMessage && msg != navigator.EmptyFilesMessage {
				parts = append(parts, r.styles.StatusError.Render(msg))
			}
		}
	}
	if state.StatusMessage != "" {
		parts = append(parts, r.styles.StatusError.Render(state.StatusMessage))
	}
	return strings.Join(parts, r.styles.Dim.Render(" │ "))
}
