package events

import (
	"log/slog"
	"sync"

	"github.com/campuskicker/kicker-server/internal/model"
)

// subscriberBuffer is the channel depth per subscriber. Slow consumers drop
// events rather than blocking publishers; consumers treat the stream as
// best-effort invalidation hints, not a durable log.
const subscriberBuffer = 64

// Bus is an in-process publish/subscribe bus for change events. Publishing
// never blocks the caller, so service operations return before (or regardless
// of whether) consumers observe the change.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan model.Event
	nextID int
	closed bool
	logger *slog.Logger
}

// NewBus creates a new event bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]chan model.Event),
		logger: logger.With(slog.String("component", "events")),
	}
}

// Publish delivers an event to all subscribers without blocking
func (b *Bus) Publish(evt model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	dropped := 0
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.Warn("event dropped - subscriber buffer full",
			slog.String("event_type", string(evt.Type)),
			slog.Int("dropped", dropped),
		)
	}
}

// Subscribe registers a new subscriber. The returned cancel function removes
// the subscription and closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan model.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close shuts down the bus and closes all subscriber channels
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
