package ui

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"sgfview/internal/board"
	"sgfview/internal/navigator"
	"sgfview/internal/source"
	"sgfview/internal/ui/input"
	inputtypes "sgfview/internal/ui/input/types"
	"sgfview/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 3 * time.Second

// Model represents the UI state
type Model struct {
	ctx    context.Context
	ctrl   *navigator.Controller
	player *board.Player
	logger *zap.Logger
	modes  string // tree names shown in the help page

	// UI-specific state not owned by the controller
	width         int
	height        int
	help          help.Model
	keys          keyMap
	spinner       spinner.Model
	focus         inputtypes.Pane
	monthCursor   int
	fileCursor    int
	filterBefore  string // query restored when a filter is cancelled
	statusMessage string
	inPagerMode   bool // tracks if we're currently in pager mode

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler
	pager        *Pager

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model browsing src. Fetches run under ctx.
func NewModel(ctx context.Context, cfg navigator.Config, src *source.Source, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	player := board.NewPlayer()

	return &Model{
		ctx:          ctx,
		ctrl:         navigator.New(cfg, src, player, logger),
		player:       player,
		logger:       logger,
		modes:        fmt.Sprintf("%s (main line), %s (with variations)", cfg.Dirs.Primary, cfg.Dirs.Alternate),
		help:         help.New(),
		keys:         defaultKeyMap(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99")))),
		focus:        inputtypes.PaneFiles,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		pager:        NewPager(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// State returns the controller's view of the browse state
func (m *Model) State() navigator.State {
	return m.ctrl.State()
}

// Init discovers the collection
func (m *Model) Init() tea.Cmd {
	return m.perform(m.ctrl.Initialize())
}

// perform turns an effect into a command run off the update loop. The
// outcome comes back as an outcomeMsg.
func (m *Model) perform(e navigator.Effect) tea.Cmd {
	if e == nil {
		return nil
	}
	ctx, ctrl := m.ctx, m.ctrl
	m.logger.Debug("effect", zap.String("location", e.Location()))
	fetch := func() tea.Msg {
		return outcomeMsg{outcome: ctrl.Perform(ctx, e)}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.player.SetSize(views.NewLayout(m.width, m.height).BoardSize())
		return m, nil

	case tea.KeyMsg:
		// The alert popup blocks everything else
		if m.ctrl.State().Alert != "" {
			switch msg.String() {
			case "enter", "esc":
				return m, m.processAction(inputtypes.DismissAlertAction{})
			case "ctrl+c":
				return m, m.processAction(inputtypes.QuitAction{Force: true})
			}
			return m, nil
		}

		state := m.ctrl.State()
		ctx := &input.ModelContext{
			Focus:  m.focus,
			Record: state.Record != "",
			Query:  state.Query,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}

	return m.handleNonKeyboardMsg(msg)
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomeMsg:
		next := m.ctrl.Apply(msg.outcome)
		switch msg.outcome.(type) {
		case navigator.MonthsListed:
			m.syncMonthCursor()
			m.syncFileCursor()
		case navigator.FilesListed:
			m.syncFileCursor()
		}
		return m, m.perform(next)

	case spinner.TickMsg:
		// Let the animation stop while nothing is loading
		if !m.ctrl.State().Phase.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerExitMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("pager: %v", msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		// Bubble Tea's RestoreTerminal() handles the actual resuming
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil
	}

	// Cursor blinks and anything else the text input wants
	return m, m.inputHandler.Update(msg)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.FocusAction:
		m.focus = a.Pane

	case inputtypes.SelectAction:
		return m.selectUnderCursor()

	case inputtypes.BoardKeyAction:
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(a.Key)
		return cmd

	case inputtypes.BeginFilterAction:
		m.filterBefore = a.Query

	case inputtypes.UpdateTextAction:
		m.filter(a.Text)

	case inputtypes.SubmitTextAction:
		m.filter(a.Text)

	case inputtypes.CancelTextAction:
		m.filter(m.filterBefore)

	case inputtypes.ToggleModeAction:
		return m.perform(m.ctrl.ToggleMode())

	case inputtypes.ReloadAction:
		m.monthCursor, m.fileCursor = 0, 0
		return m.perform(m.ctrl.Initialize())

	case inputtypes.ViewRawAction:
		return m.showInPager(m.ctrl.State().Record)

	case inputtypes.ToggleHelpAction:
		return m.showInPager(m.helpRenderer.renderHelpContent(m.modes))

	case inputtypes.DismissAlertAction:
		m.ctrl.DismissAlert()

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) filter(query string) {
	m.ctrl.FilterFiles(query)
	m.syncFileCursor()
}

// navigate moves the cursor of the focused list
func (m *Model) navigate(direction string) {
	if m.focus == inputtypes.PaneBoard {
		switch direction {
		case "home":
			m.player.Seek(0)
		case "end":
			m.player.Seek(m.player.Steps())
		}
		return
	}

	state := m.ctrl.State()
	cursor, items := &m.fileCursor, state.Visible
	if state.FilesMessage != "" {
		items = nil
	}
	if m.focus == inputtypes.PaneMonths {
		cursor, items = &m.monthCursor, state.Months
		if state.MonthsMessage != "" {
			items = nil
		}
	}
	if len(items) == 0 {
		return
	}

	page := max(1, views.NewLayout(m.width, m.height).BodyHeight-1)
	switch direction {
	case "up":
		*cursor--
	case "down":
		*cursor++
	case "pageup":
		*cursor -= page
	case "pagedown":
		*cursor += page
	case "home":
		*cursor = 0
	case "end":
		*cursor = len(items) - 1
	}
	*cursor = max(0, min(*cursor, len(items)-1))
}

// selectUnderCursor selects the month or opens the record under the cursor
func (m *Model) selectUnderCursor() tea.Cmd {
	state := m.ctrl.State()
	switch m.focus {
	case inputtypes.PaneMonths:
		if state.MonthsMessage != "" || m.monthCursor >= len(state.Months) {
			return nil
		}
		m.fileCursor = 0
		m.focus = inputtypes.PaneFiles
		return m.perform(m.ctrl.SelectMonth(state.Months[m.monthCursor]))

	case inputtypes.PaneFiles:
		if state.FilesMessage != "" || m.fileCursor >= len(state.Visible) {
			return nil
		}
		return m.perform(m.ctrl.OpenFile(state.Visible[m.fileCursor]))
	}
	return nil
}

func (m *Model) syncMonthCursor() {
	state := m.ctrl.State()
	m.monthCursor = cursorFor(state.Months, state.Month, m.monthCursor)
}

func (m *Model) syncFileCursor() {
	state := m.ctrl.State()
	m.fileCursor = cursorFor(state.Visible, state.File, m.fileCursor)
}

// cursorFor puts the cursor on selected when it is listed and otherwise
// keeps it inside items
func cursorFor(items []string, selected string, cursor int) int {
	if selected != "" {
		if i := slices.Index(items, selected); i >= 0 {
			return i
		}
	}
	return max(0, min(cursor, len(items)-1))
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusMessage = text
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// showInPager returns a command that shows content in the ov pager,
// pausing rendering while it runs
func (m *Model) showInPager(content string) tea.Cmd {
	program, pager := m.program, m.pager
	return func() tea.Msg {
		if program != nil {
			program.Send(pauseRenderingMsg{})
		}

		err := pager.Show(content)

		if program != nil {
			program.Send(resumeRenderingMsg{})
		}
		return pagerExitMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	filtering := m.inputHandler.CurrentMode() == inputtypes.ModeFilter
	filterInput := ""
	if ti := m.inputHandler.TextInput(); ti != nil {
		filterInput = ti.View()
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Nav:           m.ctrl.State(),
		Focus:         m.focus,
		MonthCursor:   m.monthCursor,
		FileCursor:    m.fileCursor,
		Filtering:     filtering,
		FilterInput:   filterInput,
		Spinner:       m.spinner.View(),
		Board:         m.player.View(),
		StatusMessage: m.statusMessage,
		HelpLine:      m.help.View(m.keys),
	})
}
