package navigator

import "sgfview/internal/domain"

// Phase is the controller's position in the browse state machine
type Phase int

const (
	Idle Phase = iota
	MonthsLoading
	MonthsReady
	FilesLoading
	FilesReady
	RecordLoading
	RecordReady
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case MonthsLoading:
		return "months-loading"
	case MonthsReady:
		return "months-ready"
	case FilesLoading:
		return "files-loading"
	case FilesReady:
		return "files-ready"
	case RecordLoading:
		return "record-loading"
	case RecordReady:
		return "record-ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Loading reports whether a fetch is outstanding
func (p Phase) Loading() bool {
	return p == MonthsLoading || p == FilesLoading || p == RecordLoading
}

// Fixed user-facing texts
const (
	EmptyFilesMessage = "no matching records"
	LoadingMessage    = "loading..."
)

// State is everything the presentation layer draws. The display surfaces
// (mode label, month list, file list, title, alert) are plain fields.
type State struct {
	Phase Phase
	domain.Selection

	// Months discovered under the primary tree, newest first
	Months []string
	// Files is the cache of record names for the active (mode, month)
	Files []string
	// Visible is Files after the search query has been applied
	Visible []string
	Query   string

	MonthsMessage string // replaces the month list when set
	FilesMessage  string // replaces the file list when set
	MonthHint     string
	ModeLabel     string
	Title         string
	Alert         string // blocking notification, cleared by DismissAlert

	// Record is the text last handed to the renderer
	Record    string
	RecordURL string
}

// clone returns a copy that shares no slices with s
func (s State) clone() State {
	s.Months = append([]string(nil), s.Months...)
	s.Files = append([]string(nil), s.Files...)
	s.Visible = append([]string(nil), s.Visible...)
	return s
}
