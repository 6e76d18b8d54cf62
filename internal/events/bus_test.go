package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPublishSubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe(TopicTask, 10)

	id := uuid.New()
	bus.Publish(StartedEvent{ID: id, GroupRank: 2, Timestamp: time.Now()})

	select {
	case received := <-ch:
		if received.TaskID() != id {
			t.Errorf("expected task ID %s, got %s", id, received.TaskID())
		}
		if received.EventType() != EventTypeStarted {
			t.Errorf("expected event type %q, got %q", EventTypeStarted, received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch1 := bus.Subscribe(TopicTask, 10)
	ch2 := bus.Subscribe(TopicTask, 10)

	id := uuid.New()
	bus.Publish(CompletedEvent{ID: id, Timestamp: time.Now()})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			if received.TaskID() != id {
				t.Errorf("subscriber %d: expected task ID %s, got %s", i+1, id, received.TaskID())
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("subscriber %d: timeout waiting for event", i+1)
		}
	}
}

func TestNonBlockingSend(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch := bus.Subscribe(TopicTask, 1)

	done := make(chan bool)
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(StartedEvent{ID: uuid.New(), Timestamp: time.Now()})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("publisher blocked (expected non-blocking behavior)")
	}

	select {
	case <-ch:
	default:
		t.Error("expected at least one event in buffer")
	}
}

func TestCloseSignalsSubscribers(t *testing.T) {
	bus := NewBus()

	ch := bus.Subscribe(TopicTask, 10)
	bus.Close()

	received := 0
	for range ch {
		received++
	}
	if received != 0 {
		t.Errorf("expected 0 events after close, got %d", received)
	}
}

func TestPublishAfterClose(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(TopicTask, 10)
	bus.Close()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("publishing after close caused panic: %v", r)
		}
	}()

	bus.Publish(StartedEvent{ID: uuid.New(), Timestamp: time.Now()})

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("received event after bus was closed")
		}
	default:
	}
}

func TestMultipleTopics(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	taskCh := bus.Subscribe(TopicTask, 10)
	queueCh := bus.Subscribe(TopicQueue, 10)

	bus.Publish(StartedEvent{ID: uuid.New(), Timestamp: time.Now()})
	bus.Publish(QuiescentEvent{Timestamp: time.Now()})

	select {
	case received := <-taskCh:
		if received.EventType() != EventTypeStarted {
			t.Errorf("task channel: expected started event, got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("task channel: timeout waiting for event")
	}

	select {
	case received := <-queueCh:
		if received.EventType() != EventTypeQuiescent {
			t.Errorf("queue channel: expected quiescent event, got %s", received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("queue channel: timeout waiting for event")
	}

	select {
	case <-taskCh:
		t.Error("task channel received unexpected event")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	allCh := bus.SubscribeAll(20)

	bus.Publish(StartedEvent{ID: uuid.New(), Timestamp: time.Now()})
	bus.Publish(QuiescentEvent{Timestamp: time.Now()})

	receivedTypes := make(map[string]bool)
	for i := 0; i < 2; i++ {
		select {
		case received := <-allCh:
			receivedTypes[received.EventType()] = true
		case <-time.After(100 * time.Millisecond):
			t.Fatal("timeout waiting for event")
		}
	}

	if !receivedTypes[EventTypeStarted] {
		t.Error("SubscribeAll did not receive started event")
	}
	if !receivedTypes[EventTypeQuiescent] {
		t.Error("SubscribeAll did not receive quiescent event")
	}

	select {
	case <-allCh:
		t.Error("received unexpected third event")
	case <-time.After(10 * time.Millisecond):
	}
}
