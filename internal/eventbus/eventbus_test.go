package eventbus

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type recorder struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (r *recorder) handle(e DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DomainEvent(nil), r.events...)
}

func TestPublishDeliversInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	rec := &recorder{}
	b.Subscribe(EventRecordSaved, rec.handle)
	b.Subscribe(EventCrawlCompleted, rec.handle)

	b.Publish(RecordSavedEvent{ID: "1"})
	b.Publish(RecordFailedEvent{ID: "2"}) // no subscriber
	b.Publish(RecordSavedEvent{ID: "3"})
	b.Publish(CrawlCompletedEvent{Saved: 2})
	b.Close()

	assert.Equal(t, []DomainEvent{
		RecordSavedEvent{ID: "1"},
		RecordSavedEvent{ID: "3"},
		CrawlCompletedEvent{Saved: 2},
	}, rec.snapshot())
}

func TestUnsubscribe(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	first, second := &recorder{}, &recorder{}
	unsubscribe := b.Subscribe(EventRecordSaved, first.handle)
	b.Subscribe(EventRecordSaved, second.handle)

	unsubscribe()
	b.Publish(RecordSavedEvent{ID: "1"})
	b.Close()

	assert.Empty(t, first.snapshot())
	assert.Len(t, second.snapshot(), 1)
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	rec := &recorder{}
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, rec.handle)

	b.Publish(ErrorEvent{Message: "one"})
	b.Publish(ErrorEvent{Message: "two"})
	b.Close()

	assert.Len(t, rec.snapshot(), 2)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	rec := &recorder{}
	b.Subscribe(EventRecordSaved, rec.handle)
	b.Close()
	b.Close()

	b.Publish(RecordSavedEvent{ID: "late"})
	assert.Empty(t, rec.snapshot())
}

func TestPublishWaitsForRoomInFullQueue(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := New(nil)
	release := make(chan struct{})
	rec := &recorder{}
	b.Subscribe(EventRecordSaved, func(e DomainEvent) {
		<-release
		rec.handle(e)
	})

	const total = queueSize + 50
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range total {
			b.Publish(RecordSavedEvent{ID: strconv.Itoa(i)})
		}
	}()

	// The first handler call holds the dispatcher, so the queue fills up
	select {
	case <-done:
		t.Fatal("publisher finished while the queue was full")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	<-done
	b.Close()

	events := rec.snapshot()
	assert.Len(t, events, total)
	assert.Equal(t, RecordSavedEvent{ID: strconv.Itoa(total - 1)}, events[total-1])
}
