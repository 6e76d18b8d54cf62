package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/toposort"
	"github.com/google/uuid"

	"github.com/taskspace/taskspace/internal/events"
	"github.com/taskspace/taskspace/internal/pool"
	"github.com/taskspace/taskspace/internal/texec"
	"github.com/taskspace/taskspace/internal/task"
)

// kindSlots is the width of the Kind axis of the ready grid. Aggregate tasks
// never enqueue (they resolve through the waiter-list protocol only), so
// the grid only needs Single and Team.
const kindSlots = 2

func kindSlot(k task.Kind) int {
	if k == task.KindTeam {
		return 1
	}
	return 0
}

// TaskQueue is the scheduler's core: the ready grid, the allocator it draws
// task records from, the execution backend workers run Apply under, and the
// lifetime counters the scheduler's introspection API surfaces. Scheduling
// and execution share one owner, rather than being split across separate
// DAG and runner types.
type TaskQueue struct {
	ready [task.NumPriorities][kindSlots]readyStack

	mem   *pool.MemoryPool
	texec *texec.Pool

	executing atomicCounter

	countAlloc atomicCounter
	maxAlloc   atomicCounter
	accumAlloc atomicCounter

	regMu    sync.RWMutex
	registry map[uuid.UUID]*task.Base

	// events, if set via SetEventBus, receives lifecycle notifications for
	// the demo TUI. nil by default; publishing is skipped entirely then.
	events *events.Bus
}

// New creates an empty TaskQueue drawing task records from mem and running
// Apply calls through texecPool.
func New(mem *pool.MemoryPool, texecPool *texec.Pool) *TaskQueue {
	return &TaskQueue{
		mem:      mem,
		texec:    texecPool,
		registry: make(map[uuid.UUID]*task.Base),
	}
}

// SetEventBus attaches a bus that Schedule/Complete/Execute publish
// lifecycle events to. Pass nil to detach.
func (q *TaskQueue) SetEventBus(b *events.Bus) {
	q.events = b
}

func (q *TaskQueue) publish(ev events.Event) {
	if q.events != nil {
		q.events.Publish(ev)
	}
}

// NewTask allocates a task record from the pool, registers it for
// diagnostics, and updates the allocation counters. It returns ok=false if
// the pool is exhausted; the caller (the Scheduler façade) is responsible
// for surfacing that as a null Future.
func (q *TaskQueue) NewTask(kind task.Kind, priority task.Priority, apply task.ApplyFunc, payloadSize uintptr) (*task.Base, bool) {
	rounded, ok := q.mem.Allocate(payloadSize)
	if !ok {
		return nil, false
	}
	t := task.NewBase(kind, priority, apply, rounded)
	t.SetState(task.StateConstructing)

	n := q.countAlloc.Add(1)
	q.accumAlloc.Add(1)
	q.maxAlloc.Raise(n)

	q.regMu.Lock()
	q.registry[t.ID] = t
	q.regMu.Unlock()

	return t, true
}

// Schedule routes t to Waiting (spliced onto a predecessor's waiter list) or
// straight to Ready. It is also the re-entry point used when a
// predecessor's Complete wakes a parked waiter, so it must be safe to call
// on a task that was already once parked.
func (q *TaskQueue) Schedule(t *task.Base) {
	if t.Kind == task.KindAggregate {
		q.scheduleAggregate(t)
		return
	}
	dep := t.Dep.Load()
	if dep == nil || !dep.TryAddWaiter(t) {
		q.pushReady(t)
		return
	}
	t.SetState(task.StateWaiting)
}

// scheduleAggregate selects the first not-yet-complete dependence and
// splices onto it, rechecking each time a wake-up occurs. AggCursor
// remembers how far the scan has already gotten so a wake-up resumes at the
// dependence it was parked on, not from the start.
func (q *TaskQueue) scheduleAggregate(t *task.Base) {
	for {
		idx := int(t.AggCursor.Load())
		if idx >= len(t.Deps) {
			q.Complete(t)
			return
		}
		dep := t.Deps[idx]
		if dep.TryAddWaiter(t) {
			t.SetState(task.StateWaiting)
			return
		}
		// dep is already complete (or completed between our read and the
		// splice attempt); move on to the next candidate.
		t.AggCursor.Add(1)
	}
}

// pushReady moves t onto the ready grid cell for its current priority and
// kind.
func (q *TaskQueue) pushReady(t *task.Base) {
	t.SetState(task.StateReady)
	q.ready[t.Priority()][kindSlot(t.Kind)].Push(t)
	q.publish(events.ReadyEvent{ID: t.ID, Priority: int(t.Priority()), Timestamp: time.Now()})
}

// popReady drains the grid in priority-major order: every Single/Team task
// at High before any at Regular, before any at Low.
func (q *TaskQueue) popReady() *task.Base {
	for pr := 0; pr < task.NumPriorities; pr++ {
		for slot := 0; slot < kindSlots; slot++ {
			if t := q.ready[pr][slot].Pop(); t != nil {
				return t
			}
		}
	}
	return nil
}

// Complete drives a finished task through completion: the atomic WaitHead
// swap to LockTag, then re-entering every captured waiter into Schedule,
// then releasing the references this task itself held (its own
// dependence(s), and the queue's own hold on t).
func (q *TaskQueue) Complete(t *task.Base) {
	waiters := t.Complete()
	for _, w := range waiters {
		q.Schedule(w)
	}

	if dep := t.Dep.Load(); dep != nil {
		q.release(dep)
	}
	for _, d := range t.Deps {
		q.release(d)
	}

	t.SetState(task.StateComplete)
	q.publish(events.CompletedEvent{ID: t.ID, Failed: t.ResultErr != nil, Timestamp: time.Now()})
	q.release(t)
}

// Assign is the ref-count-correct primitive backing Future reassignment: it
// retains t (if non-nil), stores it into *slot, and releases whatever was
// there before. Like Complete and runTask's respawn path, it can drop a
// task's reference count to zero, in which case release frees the record.
func (q *TaskQueue) Assign(slot **task.Base, t *task.Base) {
	if t != nil {
		t.Retain()
	}
	old := *slot
	*slot = t
	if old != nil {
		q.release(old)
	}
}

// AttachDep records t's single dependence at construction time, retaining
// it once. t must not yet be scheduled. dep may be nil, meaning no
// dependence.
func (q *TaskQueue) AttachDep(t *task.Base, dep *task.Base) {
	if dep == nil {
		return
	}
	dep.Retain()
	t.Dep.Store(dep)
}

// AttachDeps records an Aggregate task's dependence array at construction
// time, retaining each entry once.
func (q *TaskQueue) AttachDeps(t *task.Base, deps []*task.Base) {
	for _, d := range deps {
		d.Retain()
	}
	t.Deps = deps
}

// IffSingleThreadRecursiveExecute drains the ready grid inline when workers
// is 1: on a single-threaded backend there is no second worker to service
// tasks spawned recursively from inside a running task's Apply, so spawn
// drains whatever is ready before returning rather than risking deadlock.
// No-op for any other worker count.
func (q *TaskQueue) IffSingleThreadRecursiveExecute(workers int) {
	if workers != 1 {
		return
	}
	for t := q.popReady(); t != nil; t = q.popReady() {
		q.runTask(0, t)
	}
}

func (q *TaskQueue) release(t *task.Base) {
	if t.Release() == 0 {
		q.free(t)
	}
}

func (q *TaskQueue) free(t *task.Base) {
	q.mem.Deallocate(t.AllocSize)
	q.countAlloc.Add(-1)
	q.regMu.Lock()
	delete(q.registry, t.ID)
	q.regMu.Unlock()
}

// Stats is the introspection snapshot the scheduler exposes: live/peak/
// lifetime allocation counts and current pool occupancy.
type Stats struct {
	CountAlloc int64
	MaxAlloc   int64
	AccumAlloc int64
	PoolUsed   uint64
	PoolCap    uint64
	Executing  int64
}

// Stats returns a point-in-time snapshot of the queue's counters.
func (q *TaskQueue) Stats() Stats {
	return Stats{
		CountAlloc: q.countAlloc.Load(),
		MaxAlloc:   q.maxAlloc.Load(),
		AccumAlloc: q.accumAlloc.Load(),
		PoolUsed:   q.mem.Used(),
		PoolCap:    q.mem.Capacity(),
		Executing:  q.executing.Load(),
	}
}

// DebugOrder returns the live (not-yet-freed) tasks in one valid topological
// order, for diagnostics. It is display-only: the DAG is
// acyclic by construction, so a cycle here would indicate a bug rather than
// a legitimate input to reject.
func (q *TaskQueue) DebugOrder() ([]uuid.UUID, error) {
	q.regMu.RLock()
	defer q.regMu.RUnlock()

	var edges []toposort.Edge
	for id, t := range q.registry {
		deps := t.Deps
		if dep := t.Dep.Load(); dep != nil {
			deps = append(deps, dep)
		}
		if len(deps) == 0 {
			edges = append(edges, toposort.Edge{nil, id})
			continue
		}
		for _, d := range deps {
			if _, live := q.registry[d.ID]; !live {
				continue
			}
			edges = append(edges, toposort.Edge{d.ID, id})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("debug order: %w", err)
	}
	order := make([]uuid.UUID, 0, len(sorted))
	for _, v := range sorted {
		if v == nil {
			continue
		}
		order = append(order, v.(uuid.UUID))
	}
	return order, nil
}

// Lookup returns the live task for id, if any, so a caller can inspect
// per-task state without keeping its own index.
func (q *TaskQueue) Lookup(id uuid.UUID) (*task.Base, bool) {
	q.regMu.RLock()
	defer q.regMu.RUnlock()
	t, ok := q.registry[id]
	return t, ok
}
