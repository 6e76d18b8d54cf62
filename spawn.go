package taskspace

import (
	"context"
	"unsafe"

	"github.com/taskspace/taskspace/internal/task"
	"github.com/taskspace/taskspace/internal/texec"
)

// HostSpawn spawns a task from outside any running task. fn runs on a
// worker once p's dependence (if any) has completed; with a single-worker
// scheduler this still waits for Wait, since nothing is running yet to
// recurse out of.
func HostSpawn[T any](s *Scheduler, p Policy, fn func(*Context) (T, error)) Future[T] {
	return spawn[T](s, p, fn, false)
}

// TaskSpawn spawns a task from inside a running task's functor. Calling it
// outside a functor panics.
func TaskSpawn[T any](c *Context, p Policy, fn func(*Context) (T, error)) Future[T] {
	c.requireExecuting("TaskSpawn")
	return spawn[T](c.sched, p, fn, true)
}

func spawn[T any](s *Scheduler, p Policy, fn func(*Context) (T, error), insideTask bool) Future[T] {
	if p.anchorOwner != nil && p.anchorOwner != s {
		panic(typeIncompatible("spawn: anchor future belongs to a different scheduler"))
	}

	apply := func(self *task.Base, ex *texec.Exec) (any, error) {
		return fn(&Context{sched: s, self: self, ex: ex})
	}

	var zero T
	size := unsafe.Sizeof(task.Base{}) + unsafe.Sizeof(zero)
	t, ok := s.queue.NewTask(p.kind, p.priority, apply, size)
	if !ok {
		return Future[T]{}
	}
	t.TeamSize = p.teamSize
	if p.kind == task.KindTeam && t.TeamSize <= 0 {
		t.TeamSize = s.cfg.DefaultTeamSize
	}
	s.queue.AttachDep(t, p.anchor)
	s.queue.Schedule(t)
	if insideTask {
		// With a single-worker scheduler, the one worker is busy running
		// the caller's own Apply; nothing else will service the ready
		// grid unless this call recurses into it.
		s.queue.IffSingleThreadRecursiveExecute(s.cfg.Workers)
	}

	return newFuture[T](s, t)
}

// Respawn records a continuation decision from inside a task's own functor:
// the task re-enters Schedule with dep as its new dependence instead of
// completing. dep may be a null Future, but if non-null it must belong to
// c.Scheduler(); a dependence from a different scheduler panics with
// ErrTypeIncompatible rather than silently splicing onto a task queue this
// scheduler's Wait never drives. Calling Respawn outside a running task's
// functor panics.
func Respawn(c *Context, dep FutureLike, priority Priority) {
	c.requireExecuting("Respawn")
	if owner := futureOwner(dep); owner != nil && owner != c.sched {
		panic(typeIncompatible("Respawn: dependence future belongs to a different scheduler"))
	}
	c.self.RequestRespawn(futureBase(dep), priority)
}

// WhenAll builds an Aggregate task whose Future completes once every
// argument future has completed. Futures for schedulers other than s panic
// with ErrTypeIncompatible, checked here at construction time rather than
// at Wait time.
func WhenAll(s *Scheduler, futures ...FutureLike) Future[struct{}] {
	deps := make([]*task.Base, 0, len(futures))
	for _, f := range futures {
		if f == nil {
			continue
		}
		if owner := f.owner(); owner != nil && owner != s {
			panic(typeIncompatible("WhenAll: future belongs to a different scheduler"))
		}
		if b := f.base(); b != nil {
			deps = append(deps, b)
		}
	}

	size := task.AggregateSize(len(deps))
	t, ok := s.queue.NewTask(task.KindAggregate, Regular, nil, size)
	if !ok {
		return Future[struct{}]{}
	}
	s.queue.AttachDeps(t, deps)
	s.queue.Schedule(t)

	return newFuture[struct{}](s, t)
}

// Wait runs the scheduler's workers to quiescence: every ready task has
// run, every Aggregate has resolved, and nothing is Executing. It takes no
// context and never times out.
func Wait(s *Scheduler) error {
	return s.queue.Execute(context.Background(), s.cfg.Workers)
}
