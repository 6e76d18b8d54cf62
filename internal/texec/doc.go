// Package texec is the per-worker execution context: team membership,
// team-shared scratch, the team barrier, and the worker pool that drives
// TaskQueue.Execute. It is the concrete, swappable implementation of the
// spec's "execution backend" external collaborator.
package texec
