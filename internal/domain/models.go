package domain

import "strings"

// Mode selects which of the two parallel record trees is read
type Mode int

const (
	// Primary is the main-line tree; months are always discovered from it
	Primary Mode = iota
	// Alternate holds the same records with their variation branches
	Alternate
)

// Other returns the mode a toggle switches to
func (m Mode) Other() Mode {
	if m == Primary {
		return Alternate
	}
	return Primary
}

func (m Mode) String() string {
	switch m {
	case Primary:
		return "primary"
	case Alternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ModeDirs maps each mode to its directory name under the collection base
type ModeDirs struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate"`
}

// Dir returns the directory name of mode m
func (d ModeDirs) Dir(m Mode) string {
	if m == Alternate {
		return d.Alternate
	}
	return d.Primary
}

// Label returns the upper-cased directory name used in titles
func (d ModeDirs) Label(m Mode) string {
	return strings.ToUpper(d.Dir(m))
}

// DisplayOptions is the fixed option set handed to the board renderer
type DisplayOptions struct {
	ScrollNavigation   bool `toml:"scroll_navigation"`
	KeyboardNavigation bool `toml:"keyboard_navigation"`
	ShowCoordinates    bool `toml:"show_coordinates"`
	HighlightLastMove  bool `toml:"highlight_last_move"`
	AutoSize           bool `toml:"auto_size"`
}

// DefaultDisplayOptions enables every option
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		ScrollNavigation:   true,
		KeyboardNavigation: true,
		ShowCoordinates:    true,
		HighlightLastMove:  true,
		AutoSize:           true,
	}
}

// Selection is the user's current place in the collection
type Selection struct {
	Mode  Mode
	Month string // "" when no month is selected
	File  string // "" when no file is selected
}

// GameTitle is the header information the crawler derives from a record page
type GameTitle struct {
	Event  string
	Black  string
	White  string
	Result string
	Date   string
}
