// Package taskspace is an embeddable task-DAG scheduler: tasks may depend on
// other tasks, aggregate many predecessors with WhenAll, respawn themselves,
// and run as a single worker or a cooperating team of workers. A Future
// handle carries a dependence edge and, once the task completes, its result.
//
// The scheduling core (internal/task, internal/queue) is lock-free; the
// memory pool (internal/pool) and the worker backend (internal/texec) are
// separate, swappable implementations behind narrow interfaces.
package taskspace
