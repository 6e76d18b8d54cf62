// Package tui is a bubbletea dashboard over a taskspace Scheduler's
// lifecycle event bus: a task list with per-task event logs and a live
// allocator/queue counter panel.
package tui
