// Package events is a channel-based pub-sub bus for task lifecycle
// notifications. Publish takes no caller-supplied topic string; it
// classifies each event by its own concrete type against this package's
// fixed ReadyEvent/StartedEvent/CompletedEvent/RespawnedEvent/
// QuiescentEvent set (see topicOf in bus.go), so a topic can't drift from
// the event it's attached to. TaskQueue publishes to it when a Bus is
// attached; the demo TUI is its main subscriber.
package events
