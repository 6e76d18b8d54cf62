package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taskspace/taskspace/internal/events"
	"github.com/taskspace/taskspace/internal/task"
	"github.com/taskspace/taskspace/internal/texec"
)

// Execute runs workers concurrent workers draining the ready grid until it
// is quiescent (no ready work and nothing executing) or ctx is cancelled.
// Each worker loops independently against the lock-free ready grid rather
// than rescanning an eligible list every iteration.
func (q *TaskQueue) Execute(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)

	// If gctx is cancelled before every worker has exited on its own (the
	// outer ctx was cancelled, or one worker returned an error), Shutdown
	// cancels every still-tracked worker's context so they fall out of their
	// loop at the next ctx.Err() check instead of finishing whatever idle
	// backoff they are in. stopped lets this goroutine exit on the ordinary
	// quiescent path too, where gctx is never cancelled.
	stopped := make(chan struct{})
	go func() {
		select {
		case <-gctx.Done():
			q.texec.Shutdown()
		case <-stopped:
		}
	}()

	for w := 0; w < workers; w++ {
		groupRank := w
		g.Go(func() error {
			return q.workerLoop(gctx, groupRank)
		})
	}
	err := g.Wait()
	close(stopped)
	return err
}

func (q *TaskQueue) workerLoop(ctx context.Context, groupRank int) error {
	workerCtx, cancel := context.WithCancel(ctx)
	q.texec.Track(groupRank, cancel)
	defer func() {
		cancel()
		q.texec.Untrack(groupRank)
	}()

	idle := 0
	for {
		if err := workerCtx.Err(); err != nil {
			return err
		}
		t := q.popReady()
		if t == nil {
			if q.quiescent() {
				q.publish(events.QuiescentEvent{Timestamp: time.Now()})
				return nil
			}
			idle++
			texec.Backoff(idle)
			continue
		}
		idle = 0
		q.runTask(groupRank, t)
	}
}

// quiescent reports whether there is no ready work and nothing executing.
// Checked only after popReady fails, and runTask always finishes scheduling
// any waiters it wakes before decrementing executing, so a false reading
// here can only flip to "more work" never the reverse mid-check.
func (q *TaskQueue) quiescent() bool {
	if q.executing.Load() != 0 {
		return false
	}
	for pr := 0; pr < task.NumPriorities; pr++ {
		for slot := 0; slot < kindSlots; slot++ {
			if !q.ready[pr][slot].Empty() {
				return false
			}
		}
	}
	return true
}

// runTask runs t's Apply, then either re-enters it via Schedule (a respawn
// was requested) or completes it. A worker-side panic is recovered at this
// one boundary and converted into the task's ResultErr rather than crashing
// the pool; a functor-returned error is passed through untouched. Neither
// path retries or rolls anything back — a recovered panic simply makes the
// task complete as failed, same as any other functor error.
func (q *TaskQueue) runTask(groupRank int, t *task.Base) {
	q.executing.Add(1)
	t.SetState(task.StateExecuting)
	q.publish(events.StartedEvent{ID: t.ID, GroupRank: groupRank, Timestamp: time.Now()})

	result, err := q.apply(groupRank, t)

	if dep, priority, ok := t.TakeRespawn(); ok {
		// RequestRespawn already retained dep; only the old dependence's
		// reference needs releasing here.
		t.SetPriority(priority)
		if old := t.Dep.Swap(dep); old != nil {
			q.release(old)
		}
		t.SetState(task.StateConstructing)
		q.publish(events.RespawnedEvent{ID: t.ID, Timestamp: time.Now()})
		q.Schedule(t)
		q.executing.Add(-1)
		return
	}

	t.Result = result
	t.ResultErr = err
	q.Complete(t)
	q.executing.Add(-1)
}

// apply recovers a panic from t's Apply into a diagnostic error instead of
// letting it cross the worker goroutine boundary.
func (q *TaskQueue) apply(groupRank int, t *task.Base) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.ID, r)
		}
	}()
	if t.Kind == task.KindTeam {
		return q.runTeam(groupRank, t)
	}
	return t.Apply(t, q.texec.NewSingleExec(groupRank))
}

// runTeam runs one Team task's Apply once per team member, concurrently,
// coordinated by a shared barrier so members run in lockstep. The
// canonical result and error are team rank 0's, matching how a team policy's
// return value is conventionally the lead member's in this style of API.
func (q *TaskQueue) runTeam(groupRank int, t *task.Base) (any, error) {
	members := q.texec.NewTeam(groupRank, t.TeamSize)
	results := make([]any, t.TeamSize)
	errs := make([]error, t.TeamSize)

	var wg sync.WaitGroup
	wg.Add(t.TeamSize)
	for rank := 0; rank < t.TeamSize; rank++ {
		rank := rank
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[rank] = fmt.Errorf("task %s team rank %d panicked: %v", t.ID, rank, r)
				}
			}()
			results[rank], errs[rank] = t.Apply(t, members[rank])
		}()
	}
	wg.Wait()

	return results[0], errs[0]
}
