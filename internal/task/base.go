package task

import (
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"

	"github.com/taskspace/taskspace/internal/texec"
)

// ApplyFunc is the payload a worker runs. It receives the task's own record
// (so a respawn call inside the body can find its way back to RequestRespawn)
// and the worker's execution context (team rank, barrier, scratch). It is
// nil for Aggregate tasks, which never run a functor of their own.
type ApplyFunc func(self *Base, ex *texec.Exec) (result any, err error)

// Base is the fundamental task record. Every spawned task is one allocation
// of Base (plus, for Aggregate tasks, a trailing []*Base captured at
// creation time — see Deps).
type Base struct {
	ID    uuid.UUID
	Owner unsafe.Pointer // identity slot for an owning scheduler; the queue and spawn paths never set it (Future records its scheduler instead)

	RefCount  atomic.Int32 // created at 2: one for the producing Future, one for the queue
	AllocSize uintptr

	Apply    ApplyFunc
	Kind     Kind
	priority atomic.Int32 // Priority; the queue changes it (SetPriority) only when applying a respawn request

	// Next is the intrusive link, overloaded by role: waiter-list node on a
	// predecessor's WaitHead chain, ready-queue node, or completed-list node
	// during Complete's drain. At most one role is active at a time.
	Next atomic.Pointer[Base]

	// WaitHead is the head of the list of tasks waiting on this task. See
	// LockTag for the completion sentinel.
	WaitHead atomic.Pointer[Base]

	// Dep is the single recorded dependence for a non-aggregate task (nil if
	// none). Deps is the trailing dependence array for an Aggregate task,
	// captured once at construction; AggCursor walks it.
	Dep  atomic.Pointer[Base]
	Deps []*Base

	// TeamSize is the number of cooperating workers for a Team task (unused
	// for Single/Aggregate). AggCursor is the Aggregate-only index of the
	// next dependence to probe in scheduleAggregate's lazy scan.
	TeamSize  int
	AggCursor atomic.Int32

	// RespawnRequested/RespawnDep/RespawnPriority are the out-of-band
	// continuation decision: set by RequestRespawn from inside Apply,
	// consumed by the queue immediately after Apply returns.
	RespawnRequested atomic.Bool
	RespawnDep       atomic.Pointer[Base]
	RespawnPriority  atomic.Int32

	// Result/ResultErr are set once, by the worker that ran Apply, strictly
	// before the WaitHead CAS-to-LockTag linearization point. Readers may
	// only observe them after seeing IsComplete() report true.
	Result    any
	ResultErr error

	// status is a diagnostic projection of the state machine, set explicitly
	// by the queue at each transition (it is not itself consulted by
	// Schedule/Complete — the atomic fields above are the ground truth).
	status atomic.Int32
}

// AggregateSize is the byte size to pass to the pool for an Aggregate task
// with n recorded dependences: the Base header plus its trailing pointer
// array.
func AggregateSize(n int) uintptr {
	return unsafe.Sizeof(Base{}) + uintptr(n)*unsafe.Sizeof((*Base)(nil))
}

// NewBase allocates the record with Go's own allocator (the pool only
// accounts for its byte budget, see internal/pool) and initializes the
// fields that have a non-zero starting value.
func NewBase(kind Kind, priority Priority, apply ApplyFunc, allocSize uintptr) *Base {
	b := &Base{
		ID:        uuid.New(),
		Kind:      kind,
		Apply:     apply,
		AllocSize: allocSize,
	}
	b.RefCount.Store(2)
	b.priority.Store(int32(priority))
	return b
}

// Priority returns the task's current priority (mutable across a respawn).
func (b *Base) Priority() Priority {
	return Priority(b.priority.Load())
}

// SetPriority updates the task's priority. Only safe to call while the task
// is not reachable from any ready/waiter list — i.e. during Constructing or
// from inside the task's own Apply (Respawn).
func (b *Base) SetPriority(p Priority) {
	b.priority.Store(int32(p))
}

// Retain increments the reference count and returns the new value.
func (b *Base) Retain() int32 {
	return b.RefCount.Add(1)
}

// Release decrements the reference count and returns the new value. The
// caller must return the record to the pool when this reaches zero.
func (b *Base) Release() int32 {
	return b.RefCount.Add(-1)
}

// RequestRespawn records a continuation decision from inside Apply: the task
// should re-enter Schedule with a new dependence instead of completing. May
// only be called from the goroutine currently executing this task's Apply.
func (b *Base) RequestRespawn(dep *Base, priority Priority) {
	if dep != nil {
		dep.Retain()
	}
	b.RespawnDep.Store(dep)
	b.RespawnPriority.Store(int32(priority))
	b.RespawnRequested.Store(true)
}

// TakeRespawn clears and returns the pending respawn decision, if any.
func (b *Base) TakeRespawn() (dep *Base, priority Priority, ok bool) {
	if !b.RespawnRequested.CompareAndSwap(true, false) {
		return nil, 0, false
	}
	return b.RespawnDep.Load(), Priority(b.RespawnPriority.Load()), true
}

// TryAddWaiter attempts to splice waiter onto b's waiter list. It fails
// (returns false) iff b has already entered the completion protocol
// (WaitHead == LockTag); the caller must then route waiter directly to the
// ready queue.
func (b *Base) TryAddWaiter(waiter *Base) bool {
	for {
		head := b.WaitHead.Load()
		if head == LockTag {
			return false
		}
		waiter.Next.Store(head)
		if b.WaitHead.CompareAndSwap(head, waiter) {
			return true
		}
	}
}

// Complete is the linearization point of task completion: it unconditionally
// swaps WaitHead to LockTag and returns the private chain of waiters that
// had been spliced on before the swap, newest first (LIFO, matching the push
// order of TryAddWaiter).
func (b *Base) Complete() []*Base {
	head := b.WaitHead.Swap(LockTag)
	if head == LockTag {
		// Already completed: the chain was handed out by the first call.
		return nil
	}
	var waiters []*Base
	for n := head; n != nil; n = n.Next.Load() {
		waiters = append(waiters, n)
	}
	return waiters
}

// IsComplete is the race-free ground truth for "has this task finished",
// independent of the diagnostic State(). It is what scheduleAggregate and
// Schedule rely on, not State().
func (b *Base) IsComplete() bool {
	return b.WaitHead.Load() == LockTag
}

// State returns the diagnostic state last recorded by SetState. It is a
// projection for introspection/TUI display only; Schedule/Complete never
// read it back.
func (b *Base) State() State {
	return State(b.status.Load())
}

// SetState records the diagnostic state. Called by internal/queue at every
// transition.
func (b *Base) SetState(s State) {
	b.status.Store(int32(s))
}
