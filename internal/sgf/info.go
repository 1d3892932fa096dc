package sgf

import (
	"strconv"
	"strings"
)

// DefaultSize is the board size when SZ is missing or unreadable
const DefaultSize = 19

// Info is the game information held in the root node
type Info struct {
	Size      int
	Black     string
	White     string
	BlackRank string
	WhiteRank string
	Result    string
	Event     string
	Date      string
	Komi      string
	Handicap  int
}

// Info extracts the root properties of g
func (g *Game) Info() Info {
	r := g.Root
	info := Info{
		Size:      DefaultSize,
		Black:     r.Get("PB"),
		White:     r.Get("PW"),
		BlackRank: r.Get("BR"),
		WhiteRank: r.Get("WR"),
		Result:    r.Get("RE"),
		Event:     r.Get("EV"),
		Date:      r.Get("DT"),
		Komi:      r.Get("KM"),
	}
	// SZ may be "19" or the rectangular "19:19"; only square boards are drawn
	sz, _, _ := strings.Cut(r.Get("SZ"), ":")
	if n, err := strconv.Atoi(strings.TrimSpace(sz)); err == nil && n >= 1 && n <= 52 {
		info.Size = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(r.Get("HA"))); err == nil && n > 0 {
		info.Handicap = n
	}
	return info
}
