package board

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sgfview/internal/domain"
	"sgfview/internal/sgf"
)

// columnLetters are the board column labels; I is never used
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// KeyMap are the bindings the player reacts to
type KeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
}

// DefaultKeyMap returns the arrow and home/end bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous move")),
		Next:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next move")),
		First: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first move")),
		Last:  key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last move")),
	}
}

type playerStyles struct {
	Black   lipgloss.Style
	White   lipgloss.Style
	Grid    lipgloss.Style
	Coord   lipgloss.Style
	Marker  lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Comment lipgloss.Style
}

func defaultPlayerStyles() playerStyles {
	return playerStyles{
		Black:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
		White:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Grid:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Coord:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true),
		Marker:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Comment: lipgloss.NewStyle().Italic(true),
	}
}

// Player shows one record and steps through its main line
type Player struct {
	opts  domain.DisplayOptions
	keys  KeyMap
	style playerStyles

	game  *sgf.Game
	nodes []*sgf.Node
	info  sgf.Info
	step  int
	err   error

	width   int
	height  int
	comment viewport.Model
}

// NewPlayer returns a player with nothing loaded
func NewPlayer() *Player {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = false
	return &Player{
		opts:    domain.DefaultDisplayOptions(),
		keys:    DefaultKeyMap(),
		style:   defaultPlayerStyles(),
		comment: vp,
	}
}

// Reset loads record, replacing whatever was shown. A record that does not
// parse is reported inside the player.
func (p *Player) Reset(record string, opts domain.DisplayOptions) {
	p.opts = opts
	p.game, p.nodes, p.err = nil, nil, nil
	p.step = 0

	c, err := sgf.Parse(record)
	if err != nil {
		p.err = err
		p.comment.SetContent("")
		return
	}
	p.game = c.Games[0]
	p.nodes = p.game.MainLine()
	p.info = p.game.Info()
	p.SetSize(p.width, p.height)
}

// Err returns the parse failure of the loaded record, if any
func (p *Player) Err() error { return p.err }

// Step returns the index of the shown node on the main line
func (p *Player) Step() int { return p.step }

// Steps returns the number of nodes after the root
func (p *Player) Steps() int {
	if len(p.nodes) == 0 {
		return 0
	}
	return len(p.nodes) - 1
}

// Seek moves to step, clamped to the main line
func (p *Player) Seek(step int) {
	p.step = max(0, min(step, p.Steps()))
	p.refreshComment()
}

func (p *Player) refreshComment() {
	if len(p.nodes) == 0 {
		p.comment.SetContent("")
		return
	}
	style := p.style.Comment
	if p.comment.Width > 0 {
		style = style.Width(p.comment.Width)
	}
	p.comment.SetContent(style.Render(p.nodes[p.step].Get("C")))
	p.comment.GotoTop()
}

// SetSize fits the player into width x height cells
func (p *Player) SetSize(width, height int) {
	p.width, p.height = width, height
	p.comment.Width = width
	p.comment.Height = max(1, height-p.boardHeight()-2)
	p.refreshComment()
}

func (p *Player) boardHeight() int {
	h := p.info.Size
	if h == 0 {
		h = sgf.DefaultSize
	}
	if p.opts.ShowCoordinates {
		h += 2
	}
	return h
}

// Update handles move stepping. Keys the player does not bind go to the
// comment viewport.
func (p *Player) Update(msg tea.Msg) (*Player, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.opts.KeyboardNavigation {
			switch {
			case key.Matches(msg, p.keys.Prev):
				p.Seek(p.step - 1)
				return p, nil
			case key.Matches(msg, p.keys.Next):
				p.Seek(p.step + 1)
				return p, nil
			case key.Matches(msg, p.keys.First):
				p.Seek(0)
				return p, nil
			case key.Matches(msg, p.keys.Last):
				p.Seek(p.Steps())
				return p, nil
			}
		}
		var cmd tea.Cmd
		p.comment, cmd = p.comment.Update(msg)
		return p, cmd

	case tea.MouseMsg:
		if !p.opts.ScrollNavigation || msg.Action != tea.MouseActionPress {
			return p, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.Seek(p.step - 1)
		case tea.MouseButtonWheelDown:
			p.Seek(p.step + 1)
		}
	}
	return p, nil
}

// View draws the board, the game line and the current comment
func (p *Player) View() string {
	if p.err != nil {
		return p.style.Error.Render("cannot parse record: " + p.err.Error())
	}
	if p.game == nil {
		return p.style.Coord.Render("no record")
	}

	pos, last := Replay(p.nodes, p.info.Size, p.step)

	var b strings.Builder
	b.WriteString(p.style.Info.Render(p.players()))
	b.WriteString("\n")
	b.WriteString(p.renderBoard(pos, last))
	b.WriteString("\n")
	b.WriteString(p.status(pos, last))
	if c := p.nodes[p.step].Get("C"); c != "" {
		b.WriteString("\n")
		if p.width == 0 || p.height == 0 {
			// No viewport to scroll in
			b.WriteString(p.style.Comment.Render(c))
		} else {
			b.WriteString(p.comment.View())
		}
	}
	return b.String()
}

func (p *Player) players() string {
	name := func(n, rank string) string {
		if n == "" {
			n = "?"
		}
		if rank != "" {
			n += " " + rank
		}
		return n
	}
	s := fmt.Sprintf("B %s  W %s", name(p.info.Black, p.info.BlackRank), name(p.info.White, p.info.WhiteRank))
	if p.info.Result != "" {
		s += "  " + p.info.Result
	}
	return s
}

func (p *Player) status(pos *Position, last *sgf.Move) string {
	parts := []string{fmt.Sprintf("move %d/%d", p.step, p.Steps())}
	if last != nil {
		where := "pass"
		if !last.Pass {
			where = p.pointName(last.Point)
		}
		parts = append(parts, fmt.Sprintf("last %s %s", last.Color, where))
	}
	parts = append(parts, fmt.Sprintf("captures B %d W %d", pos.Captured(sgf.Black), pos.Captured(sgf.White)))
	if n := len(p.nodes[p.step].Children); n > 1 {
		parts = append(parts, fmt.Sprintf("%d variations", n))
	}
	return p.style.Coord.Render(strings.Join(parts, "  "))
}

// wide reports whether cells are two columns
func (p *Player) wide() bool {
	if !p.opts.AutoSize || p.width == 0 {
		return true
	}
	need := p.info.Size * 2
	if p.opts.ShowCoordinates {
		need += 6
	}
	return p.width >= need
}

func (p *Player) renderBoard(pos *Position, last *sgf.Move) string {
	size := pos.Size()
	wide := p.wide()
	var lines []string

	header := func() string {
		var h strings.Builder
		h.WriteString("   ")
		for x := 0; x < size; x++ {
			h.WriteString(columnLabel(x))
			if wide {
				h.WriteString(" ")
			}
		}
		return p.style.Coord.Render(strings.TrimRight(h.String(), " "))
	}

	if p.opts.ShowCoordinates {
		lines = append(lines, header())
	}
	for y := 0; y < size; y++ {
		var row strings.Builder
		if p.opts.ShowCoordinates {
			row.WriteString(p.style.Coord.Render(fmt.Sprintf("%2d ", size-y)))
		}
		for x := 0; x < size; x++ {
			pt := sgf.Point{X: x, Y: y}
			marked := p.opts.HighlightLastMove && last != nil && !last.Pass && last.Point == pt
			row.WriteString(p.cell(pos.At(pt), starPoint(size, x, y), marked, wide))
			if wide && x < size-1 {
				if marked {
					row.WriteString(p.style.Marker.Render("<"))
				} else {
					row.WriteString(" ")
				}
			}
		}
		if p.opts.ShowCoordinates {
			row.WriteString(p.style.Coord.Render(fmt.Sprintf(" %d", size-y)))
		}
		lines = append(lines, row.String())
	}
	if p.opts.ShowCoordinates {
		lines = append(lines, header())
	}
	return strings.Join(lines, "\n")
}

func (p *Player) cell(c sgf.Color, star, marked, wide bool) string {
	var glyph string
	var style lipgloss.Style
	switch c {
	case sgf.Black:
		glyph, style = "●", p.style.Black
		if !wide {
			glyph = "X"
		}
	case sgf.White:
		glyph, style = "○", p.style.White
		if !wide {
			glyph = "O"
		}
	default:
		glyph, style = "·", p.style.Grid
		if !wide {
			glyph = "."
		}
		if star {
			glyph = "+"
		}
	}
	if marked {
		style = p.style.Marker
	}
	return style.Render(glyph)
}

func (p *Player) pointName(pt sgf.Point) string {
	return columnLabel(pt.X) + strconv.Itoa(p.info.Size-pt.Y)
}

func columnLabel(x int) string {
	if x < len(columnLetters) {
		return string(columnLetters[x])
	}
	return strconv.Itoa(x + 1)
}

// starPoint reports the handicap points of the common board sizes
func starPoint(size, x, y int) bool {
	var lines []int
	switch size {
	case 19:
		lines = []int{3, 9, 15}
	case 13:
		lines = []int{3, 6, 9}
	case 9:
		lines = []int{2, 4, 6}
	default:
		return false
	}
	return slices.Contains(lines, x) && slices.Contains(lines, y)
}
