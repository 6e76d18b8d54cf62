package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the base interface for all events on the Bus.
type Event interface {
	EventType() string
	TaskID() uuid.UUID
}

// Topic constants.
const (
	TopicTask  = "task"
	TopicQueue = "queue"
)

// Event type constants.
const (
	EventTypeReady     = "task.ready"
	EventTypeStarted   = "task.started"
	EventTypeCompleted = "task.completed"
	EventTypeRespawned = "task.respawned"
	EventTypeQuiescent = "queue.quiescent"
)

// ReadyEvent is published when a task lands on the ready grid.
type ReadyEvent struct {
	ID        uuid.UUID
	Priority  int
	Timestamp time.Time
}

func (e ReadyEvent) EventType() string { return EventTypeReady }
func (e ReadyEvent) TaskID() uuid.UUID { return e.ID }

// StartedEvent is published when a worker begins running a task's Apply.
type StartedEvent struct {
	ID        uuid.UUID
	GroupRank int
	Timestamp time.Time
}

func (e StartedEvent) EventType() string { return EventTypeStarted }
func (e StartedEvent) TaskID() uuid.UUID { return e.ID }

// CompletedEvent is published when a task finishes the completion protocol.
type CompletedEvent struct {
	ID        uuid.UUID
	Failed    bool
	Timestamp time.Time
}

func (e CompletedEvent) EventType() string { return EventTypeCompleted }
func (e CompletedEvent) TaskID() uuid.UUID { return e.ID }

// RespawnedEvent is published when a task re-enters Schedule from Respawn
// instead of completing.
type RespawnedEvent struct {
	ID        uuid.UUID
	Timestamp time.Time
}

func (e RespawnedEvent) EventType() string { return EventTypeRespawned }
func (e RespawnedEvent) TaskID() uuid.UUID { return e.ID }

// QuiescentEvent is published by each Execute worker that observes global
// quiescence as it exits, so one Execute call can publish several. TaskID is
// the zero UUID since it is not about one task.
type QuiescentEvent struct {
	Timestamp time.Time
}

func (e QuiescentEvent) EventType() string { return EventTypeQuiescent }
func (e QuiescentEvent) TaskID() uuid.UUID { return uuid.UUID{} }
