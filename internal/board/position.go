// Package board replays game records and draws them in the terminal.
package board

import (
	"errors"

	"sgfview/internal/sgf"
)

var (
	ErrOutside  = errors.New("point is outside the board")
	ErrOccupied = errors.New("point is occupied")
	ErrSuicide  = errors.New("suicide is not allowed")
)

// Position is the stone layout of a square board
type Position struct {
	size     int
	grid     []sgf.Color
	captured [3]int // indexed by the capturing colour
}

// NewPosition returns an empty board
func NewPosition(size int) *Position {
	return &Position{size: size, grid: make([]sgf.Color, size*size)}
}

func (p *Position) Size() int { return p.size }

func (p *Position) inside(pt sgf.Point) bool {
	return pt.X >= 0 && pt.Y >= 0 && pt.X < p.size && pt.Y < p.size
}

// At returns the stone on pt, Empty off the board
func (p *Position) At(pt sgf.Point) sgf.Color {
	if !p.inside(pt) {
		return sgf.Empty
	}
	return p.grid[pt.Y*p.size+pt.X]
}

func (p *Position) set(pt sgf.Point, c sgf.Color) {
	p.grid[pt.Y*p.size+pt.X] = c
}

// Captured returns how many stones c has taken
func (p *Position) Captured(c sgf.Color) int {
	return p.captured[c]
}

// Setup places c on pt regardless of the rules; Empty clears it
func (p *Position) Setup(pt sgf.Point, c sgf.Color) {
	if p.inside(pt) {
		p.set(pt, c)
	}
}

// Play puts a stone for m.Color and removes the opponent groups it leaves
// without liberties. A move that would leave its own group without
// liberties is rejected and the board is unchanged.
func (p *Position) Play(m sgf.Move) error {
	if m.Pass {
		return nil
	}
	pt := m.Point
	if !p.inside(pt) {
		return ErrOutside
	}
	if p.At(pt) != sgf.Empty {
		return ErrOccupied
	}

	p.set(pt, m.Color)
	taken := 0
	for _, n := range p.neighbours(pt) {
		if p.At(n) != m.Color.Opponent() {
			continue
		}
		stones, libs := p.group(n)
		if libs > 0 {
			continue
		}
		for _, s := range stones {
			p.set(s, sgf.Empty)
		}
		taken += len(stones)
	}

	if taken == 0 {
		if _, libs := p.group(pt); libs == 0 {
			p.set(pt, sgf.Empty)
			return ErrSuicide
		}
	}
	p.captured[m.Color] += taken
	return nil
}

func (p *Position) neighbours(pt sgf.Point) []sgf.Point {
	out := make([]sgf.Point, 0, 4)
	for _, d := range [4]sgf.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		n := sgf.Point{X: pt.X + d.X, Y: pt.Y + d.Y}
		if p.inside(n) {
			out = append(out, n)
		}
	}
	return out
}

// group returns the chain containing pt and its number of liberties
func (p *Position) group(pt sgf.Point) ([]sgf.Point, int) {
	color := p.At(pt)
	seen := map[sgf.Point]bool{pt: true}
	libs := map[sgf.Point]bool{}
	stack := []sgf.Point{pt}
	var stones []sgf.Point

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, cur)
		for _, n := range p.neighbours(cur) {
			switch p.At(n) {
			case sgf.Empty:
				libs[n] = true
			case color:
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
	}
	return stones, len(libs)
}

// Replay builds the position after nodes[0..n], applying setup properties
// and moves in order. Moves the rules reject are skipped. The second result
// is the move of nodes[n], or nil if it has none.
func Replay(nodes []*sgf.Node, size, n int) (*Position, *sgf.Move) {
	pos := NewPosition(size)
	var last *sgf.Move
	for i := 0; i <= n && i < len(nodes); i++ {
		node := nodes[i]
		for _, pt := range sgf.Points(node.Values("AB"), size) {
			pos.Setup(pt, sgf.Black)
		}
		for _, pt := range sgf.Points(node.Values("AW"), size) {
			pos.Setup(pt, sgf.White)
		}
		for _, pt := range sgf.Points(node.Values("AE"), size) {
			pos.Setup(pt, sgf.Empty)
		}

		last = nil
		if m, ok := node.Move(size); ok {
			if err := pos.Play(m); err == nil {
				last = &m
			}
		}
	}
	return pos, last
}
