package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"sgfview/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCrawlStarted   = domain.EventCrawlStarted
	EventRecordSaved    = domain.EventRecordSaved
	EventRecordSkipped  = domain.EventRecordSkipped
	EventRecordFailed   = domain.EventRecordFailed
	EventCrawlCompleted = domain.EventCrawlCompleted
	EventError          = domain.EventError
)

// Re-export domain event types
type CrawlStartedEvent = domain.CrawlStartedEvent
type RecordSavedEvent = domain.RecordSavedEvent
type RecordSkippedEvent = domain.RecordSkippedEvent
type RecordFailedEvent = domain.RecordFailedEvent
type CrawlCompletedEvent = domain.CrawlCompletedEvent
type ErrorEvent = domain.ErrorEvent

// queueSize is how many events may wait for the dispatcher
const queueSize = 1000

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	// Close delivers the events already published, then stops the bus
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	eventChan chan DomainEvent
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a new event bus
func New(logger *zap.Logger) EventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &bus{
		logger:    logger,
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, queueSize),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. It blocks while the queue
// is full and drops the event once the bus is closed.
func (b *bus) Publish(event DomainEvent) {
	// Skipped ids are too frequent to be worth a line each
	if event.Type() != EventRecordSkipped {
		b.logger.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	select {
	case <-b.quit:
		b.logger.Warn("event bus closed, dropping event", zap.String("type", string(event.Type())))
		return
	default:
	}

	// A full queue makes the publisher wait for the dispatcher
	select {
	case b.eventChan <- event:
	case <-b.quit:
		b.logger.Warn("event bus closed, dropping event", zap.String("type", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher after the queued events were handled
func (b *bus) Close() {
	b.closeOnce.Do(func() { close(b.quit) })
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers. Handlers run in
// order on the dispatcher goroutine, so a subscriber sees events in the
// order they were published.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			// Deliver what is already queued
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panic",
						zap.String("type", string(event.Type())),
						zap.Any("panic", r),
						zap.ByteString("stack", debug.Stack()))
				}
			}()
			s.handler(event)
		}()
	}
}
