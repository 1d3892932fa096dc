package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCrawlStarted   EventType = "CrawlStarted"
	EventRecordSaved    EventType = "RecordSaved"
	EventRecordSkipped  EventType = "RecordSkipped"
	EventRecordFailed   EventType = "RecordFailed"
	EventCrawlCompleted EventType = "CrawlCompleted"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CrawlStartedEvent is emitted once the list page has been read
type CrawlStartedEvent struct {
	Month string
	IDs   int // ids found on the list page
}

func (e CrawlStartedEvent) Type() EventType { return EventCrawlStarted }

// RecordSavedEvent is emitted after both trees received a record
type RecordSavedEvent struct {
	ID       string
	Filename string
	Month    string
}

func (e RecordSavedEvent) Type() EventType { return EventRecordSaved }

// RecordSkippedEvent is emitted for ids the ledger already holds
type RecordSkippedEvent struct {
	ID string
}

func (e RecordSkippedEvent) Type() EventType { return EventRecordSkipped }

// RecordFailedEvent is emitted when a record page could not be turned into a record
type RecordFailedEvent struct {
	ID  string
	Err error
}

func (e RecordFailedEvent) Type() EventType { return EventRecordFailed }

// CrawlCompletedEvent is emitted at the end of a crawl
type CrawlCompletedEvent struct {
	Saved  int
	Failed int
}

func (e CrawlCompletedEvent) Type() EventType { return EventCrawlCompleted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
