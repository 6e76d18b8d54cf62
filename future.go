package taskspace

import (
	"fmt"

	"github.com/taskspace/taskspace/internal/task"
)

// FutureLike is the generic-erased view of a Future[T], used wherever an API
// needs to accept a future independent of its value type: WhenAll's
// variadic argument list, Respawn's dependence, and Policy's *On
// constructors. Only Future[T] implements it.
type FutureLike interface {
	base() *task.Base
	owner() *Scheduler
}

// Future is a strong, reference-counted handle to a task. The
// zero value is null. Future is a value type: there is no copy-constructor
// in Go, so assignment (`f2 := f1`) is a plain Go value copy and does NOT
// retain. A minted Future (HostSpawn, TaskSpawn, WhenAll) takes over the
// reference the task record was created with; Close releases it through
// TaskQueue.Assign.
type Future[T any] struct {
	sched *Scheduler
	b     *task.Base
}

func (f Future[T]) base() *task.Base   { return f.b }
func (f Future[T]) owner() *Scheduler  { return f.sched }

// IsNull reports whether this Future carries no task (allocation failure,
// or the zero value).
func (f Future[T]) IsNull() bool { return f.b == nil }

// ReferenceCount returns the task's live reference count: one per live
// Future plus one held by the queue until the task completes. Zero for a
// null Future.
func (f Future[T]) ReferenceCount() int32 {
	if f.b == nil {
		return 0
	}
	return f.b.RefCount.Load()
}

// Get returns the task's result. Valid only after the task is Complete
// (i.e. after Wait has returned); calling it on a null Future panics.
func (f Future[T]) Get() (T, error) {
	var zero T
	if f.b == nil {
		panic(misuse("Get called on a null Future"))
	}
	if !f.b.IsComplete() {
		panic(misuse("Get called on task %s before it completed", f.b.ID))
	}
	if f.b.ResultErr != nil {
		return zero, f.b.ResultErr
	}
	if f.b.Result == nil {
		return zero, nil
	}
	v, ok := f.b.Result.(T)
	if !ok {
		panic(typeIncompatible("Future[%T].Get: task result has dynamic type %T", zero, f.b.Result))
	}
	return v, nil
}

// Close drops this Future's strong reference, releasing the task back to
// the pool if nothing else (no other Future, no queue hold) still holds it.
// Safe to call on a null Future (no-op).
func (f *Future[T]) Close() {
	if f.sched == nil || f.b == nil {
		f.b = nil
		return
	}
	f.sched.queue.Assign(&f.b, nil)
}

func (f Future[T]) String() string {
	if f.b == nil {
		return "Future(null)"
	}
	return fmt.Sprintf("Future(%s, refs=%d)", f.b.ID, f.b.RefCount.Load())
}

// newFuture mints a Future owning task t with one strong reference, used by
// HostSpawn/TaskSpawn/WhenAll right after NewTask (which already creates t
// at ref_count 2, one for this Future and one for the queue's hold — see
// task.NewBase).
func newFuture[T any](sched *Scheduler, t *task.Base) Future[T] {
	return Future[T]{sched: sched, b: t}
}
