package queue

import (
	"sync/atomic"

	"github.com/taskspace/taskspace/internal/task"
)

// readyStack is a lock-free intrusive LIFO built on task.Base.Next, the same
// CAS-loop shape as Base.TryAddWaiter. One exists per (Priority, Kind) cell
// of the ready grid.
type readyStack struct {
	head atomic.Pointer[task.Base]
}

func (s *readyStack) Push(t *task.Base) {
	for {
		old := s.head.Load()
		t.Next.Store(old)
		if s.head.CompareAndSwap(old, t) {
			return
		}
	}
}

func (s *readyStack) Pop() *task.Base {
	for {
		old := s.head.Load()
		if old == nil {
			return nil
		}
		next := old.Next.Load()
		if s.head.CompareAndSwap(old, next) {
			old.Next.Store(nil)
			return old
		}
	}
}

func (s *readyStack) Empty() bool {
	return s.head.Load() == nil
}
