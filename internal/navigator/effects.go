package navigator

// Effect is a fetch the controller needs performed. Effects are plain data:
// running one does not touch controller state, so it can happen off the UI
// loop. Its outcome goes back through Apply.
type Effect interface {
	Region() Region
	Location() string
}

// Region identifies the part of the screen a fetch populates
type Region int

const (
	RegionMonths Region = iota
	RegionFiles
	RegionRecord
	regionCount
)

// ListMonths lists the month root of the primary tree
type ListMonths struct {
	Token uint64
	URL   string
}

func (e ListMonths) Region() Region   { return RegionMonths }
func (e ListMonths) Location() string { return e.URL }

// ListFiles lists one month folder of the active mode
type ListFiles struct {
	Token uint64
	URL   string
	Month string
}

func (e ListFiles) Region() Region   { return RegionFiles }
func (e ListFiles) Location() string { return e.URL }

// FetchRecord retrieves one record's text
type FetchRecord struct {
	Token uint64
	URL   string
	File  string
}

func (e FetchRecord) Region() Region   { return RegionRecord }
func (e FetchRecord) Location() string { return e.URL }

// Outcome is the result of performing an effect
type Outcome interface {
	outcome()
}

// MonthsListed carries the entries of the month root
type MonthsListed struct {
	Token   uint64
	URL     string
	Entries []string
	Err     error
}

// FilesListed carries the entries of a month folder
type FilesListed struct {
	Token   uint64
	URL     string
	Entries []string
	Err     error
}

// RecordFetched carries a record's text
type RecordFetched struct {
	Token uint64
	URL   string
	File  string
	Text  string
	Err   error
}

func (MonthsListed) outcome()  {}
func (FilesListed) outcome()   {}
func (RecordFetched) outcome() {}
