package taskspace

import (
	"github.com/taskspace/taskspace/internal/task"
	"github.com/taskspace/taskspace/internal/texec"
)

// Context is what a task's functor body sees while running: the worker
// backend's per-call view (team rank, scratch, barrier) plus enough of the
// scheduler to call TaskSpawn/Respawn. It is only ever constructed by the
// queue's worker loop immediately before invoking Apply, so it cannot
// outlive that call in well-behaved code; Respawn/TaskSpawn still check
// self's state defensively and panic if called outside a running task's
// functor.
type Context struct {
	sched *Scheduler
	self  *task.Base
	ex    *texec.Exec
}

// GroupRank identifies the worker slot driving this task.
func (c *Context) GroupRank() int { return c.ex.GroupRank() }

// TeamRank is this worker's rank within its team (0 for a Single task).
func (c *Context) TeamRank() int { return c.ex.TeamRank() }

// TeamSize is the number of workers cooperating on this task (1 for Single).
func (c *Context) TeamSize() int { return c.ex.TeamSize() }

// Scratch is the team-shared scratch buffer (zero-length for a Single task).
func (c *Context) Scratch() []byte { return c.ex.Scratch() }

// Barrier returns this task's team barrier (a no-op for a Single task).
func (c *Context) Barrier() texec.Barrier { return c.ex.Barrier() }

// Scheduler returns the scheduler running this task, for TaskSpawn.
func (c *Context) Scheduler() *Scheduler { return c.sched }

func (c *Context) requireExecuting(op string) {
	if c.self == nil || c.self.State() != task.StateExecuting {
		panic(misuse("%s called outside a running task's functor", op))
	}
}
