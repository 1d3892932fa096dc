package sgf

// Color of a stone or of the player to move
type Color int

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other player
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "."
}

// Point is a board intersection, column X and row Y from the top left
type Point struct {
	X, Y int
}

// ParsePoint decodes a two-letter coordinate ("a" is 0, "A" is 26). The
// second result is false for a pass: an empty value, or "tt" on boards up
// to 19x19.
func ParsePoint(v string, size int) (Point, bool) {
	if v == "" || (v == "tt" && size <= 19) || len(v) != 2 {
		return Point{}, false
	}
	x, okx := coord(v[0])
	y, oky := coord(v[1])
	if !okx || !oky || x >= size || y >= size {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

func coord(c byte) (int, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 26, true
	}
	return 0, false
}

// Points expands a list of points, including compressed "aa:cc"
// rectangles, as used by AB, AW and AE.
func Points(values []string, size int) []Point {
	var pts []Point
	for _, v := range values {
		if len(v) == 5 && v[2] == ':' {
			a, oka := ParsePoint(v[:2], size)
			b, okb := ParsePoint(v[3:], size)
			if !oka || !okb {
				continue
			}
			for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
				for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
					pts = append(pts, Point{X: x, Y: y})
				}
			}
			continue
		}
		if p, ok := ParsePoint(v, size); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

// Move is the play recorded in a node
type Move struct {
	Color Color
	Point Point
	Pass  bool
}

// Move returns the B or W play of n, if it has one
func (n *Node) Move(size int) (Move, bool) {
	for _, c := range []Color{Black, White} {
		vals := n.Values(c.String())
		if vals == nil {
			continue
		}
		p, ok := ParsePoint(vals[0], size)
		return Move{Color: c, Point: p, Pass: !ok}, true
	}
	return Move{}, false
}
