package events

import (
	"sync"
)

// Bus is a channel-based pub-sub event bus for the scheduler's lifecycle
// events. Publish derives the topic from the event's own type (every
// ReadyEvent/StartedEvent/CompletedEvent/RespawnedEvent lands on TopicTask,
// every QuiescentEvent on TopicQueue) instead of trusting a caller-supplied
// string, so topic and event type can never drift apart the way a
// mistyped topic argument would let them. SubscribeAll still works across
// both topics for consumers like the demo TUI that don't care.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string][]chan Event // topic -> subscriber channels
	allSubs []chan Event            // channels subscribed to all topics
	closed  bool
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs:    make(map[string][]chan Event),
		allSubs: make([]chan Event, 0),
	}
}

// Subscribe creates a subscription to a specific topic.
// Returns a read-only channel that receives events published to that topic.
// bufSize determines the channel buffer size (defaults to 256 if <= 0).
func (b *Bus) Subscribe(topic string, bufSize int) <-chan Event {
	if bufSize <= 0 {
		bufSize = 256
	}

	ch := make(chan Event, bufSize)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch
	}

	b.subs[topic] = append(b.subs[topic], ch)

	return ch
}

// SubscribeAll creates a subscription to ALL topics.
// Returns a single read-only channel that receives events from every topic.
// bufSize determines the channel buffer size (defaults to 256 if <= 0).
func (b *Bus) SubscribeAll(bufSize int) <-chan Event {
	if bufSize <= 0 {
		bufSize = 256
	}

	ch := make(chan Event, bufSize)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return ch
	}

	b.allSubs = append(b.allSubs, ch)

	return ch
}

// Publish sends event to every subscriber of its topic (derived from the
// event's own type via topicOf) plus every SubscribeAll channel.
// Non-blocking: if a subscriber's channel is full, the event is dropped for
// that subscriber.
func (b *Bus) Publish(event Event) {
	topic := topicOf(event)

	b.mu.RLock()
	defer b.mu.RUnlock()

	// Don't publish if bus is closed
	if b.closed {
		return
	}

	// Send to topic-specific subscribers
	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
			// Channel full, drop event (non-blocking)
		}
	}

	// Send to all-topic subscribers
	for _, ch := range b.allSubs {
		select {
		case ch <- event:
		default:
			// Channel full, drop event (non-blocking)
		}
	}
}

// topicOf classifies event by its concrete type against the fixed set
// internal/events/types.go declares, rather than leaving topic assignment
// to whatever string a caller happens to pass to Publish.
func topicOf(event Event) string {
	switch event.(type) {
	case QuiescentEvent:
		return TopicQueue
	default:
		return TopicTask
	}
}

// Close closes the event bus and all subscriber channels.
// Safe to call multiple times (idempotent).
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	// Close all topic-specific subscribers
	for _, channels := range b.subs {
		for _, ch := range channels {
			close(ch)
		}
	}

	// Close all-topic subscribers
	for _, ch := range b.allSubs {
		close(ch)
	}
}
