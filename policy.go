package taskspace

import "github.com/taskspace/taskspace/internal/task"

// Priority orders ready-queue draining: High before Regular before Low.
type Priority = task.Priority

const (
	High    = task.High
	Regular = task.Regular
	Low     = task.Low
)

// Policy carries the kind, priority, team size, and optional anchoring
// dependence a spawn call needs.
//
// TaskSingle/TaskTeam cover the unanchored case (used with HostSpawn, or
// with TaskSpawn when the new task should start ready immediately) and
// TaskSingleOn/TaskTeamOn cover the case anchored on a dependence future.
type Policy struct {
	kind        task.Kind
	priority    task.Priority
	teamSize    int
	anchor      *task.Base
	anchorOwner *Scheduler
}

// TaskSingle builds a Policy for a Single task with no dependence.
func TaskSingle(priority Priority) Policy {
	return Policy{kind: task.KindSingle, priority: priority, teamSize: 1}
}

// TaskSingleOn builds a Policy for a Single task that does not become ready
// until dep completes. dep may be a null Future, which is equivalent to
// TaskSingle. dep must belong to the same scheduler the policy is eventually
// spawned on; spawn panics with ErrTypeIncompatible otherwise.
func TaskSingleOn(dep FutureLike, priority Priority) Policy {
	return Policy{kind: task.KindSingle, priority: priority, teamSize: 1, anchor: futureBase(dep), anchorOwner: futureOwner(dep)}
}

// TaskTeam builds a Policy for a Team task of teamSize cooperating workers
// with no dependence. teamSize <= 0 defers to the owning Scheduler's
// DefaultTeamSize, resolved when the task is spawned.
func TaskTeam(priority Priority, teamSize int) Policy {
	return Policy{kind: task.KindTeam, priority: priority, teamSize: teamSize}
}

// TaskTeamOn builds a Policy for a Team task anchored on dep. teamSize <= 0
// defers to the owning Scheduler's DefaultTeamSize, resolved when the task
// is spawned. dep must belong to the same scheduler the policy is eventually
// spawned on; spawn panics with ErrTypeIncompatible otherwise.
func TaskTeamOn(dep FutureLike, priority Priority, teamSize int) Policy {
	return Policy{kind: task.KindTeam, priority: priority, teamSize: teamSize, anchor: futureBase(dep), anchorOwner: futureOwner(dep)}
}

// futureBase extracts the underlying task record from a FutureLike,
// tolerating a nil interface or a null Future (both mean "no dependence").
func futureBase(f FutureLike) *task.Base {
	if f == nil {
		return nil
	}
	return f.base()
}

// futureOwner extracts the scheduler a FutureLike was minted from,
// tolerating a nil interface.
func futureOwner(f FutureLike) *Scheduler {
	if f == nil {
		return nil
	}
	return f.owner()
}
