package taskspace

import (
	"github.com/taskspace/taskspace/internal/events"
	"github.com/taskspace/taskspace/internal/pool"
	"github.com/taskspace/taskspace/internal/queue"
	"github.com/taskspace/taskspace/internal/texec"
)

// Scheduler is one execution space: its own memory pool, worker backend,
// and task queue. Construct one with NewScheduler and drive it to
// quiescence with Wait.
type Scheduler struct {
	cfg   SchedulerConfig
	mem   *pool.MemoryPool
	texec *texec.Pool
	queue *queue.TaskQueue
}

// NewScheduler constructs a Scheduler with its own memory pool sized per
// cfg.
func NewScheduler(cfg SchedulerConfig) (*Scheduler, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	mem := pool.New(cfg.CapacityBytes, cfg.Log2Superblock)
	texecPool := texec.NewPool(cfg.ScratchBytes)
	q := queue.New(mem, texecPool)
	return &Scheduler{cfg: cfg, mem: mem, texec: texecPool, queue: q}, nil
}

// Events attaches b as the scheduler's lifecycle event sink (used by the
// demo TUI); pass nil to detach.
func (s *Scheduler) Events(b *events.Bus) {
	s.queue.SetEventBus(b)
}

// AllocationCapacity is the memory pool's total byte capacity.
func (s *Scheduler) AllocationCapacity() int { return int(s.mem.Capacity()) }

// AllocatedTaskCount is the number of live task records right now.
func (s *Scheduler) AllocatedTaskCount() int { return int(s.queue.Stats().CountAlloc) }

// AllocatedTaskCountMax is the high-water mark of AllocatedTaskCount.
func (s *Scheduler) AllocatedTaskCountMax() int { return int(s.queue.Stats().MaxAlloc) }

// AllocatedTaskCountAccum is the lifetime total of successful spawns.
func (s *Scheduler) AllocatedTaskCountAccum() int { return int(s.queue.Stats().AccumAlloc) }

// DebugOrder returns a diagnostic topological ordering of the currently
// live task set: every task record not yet freed, including completed tasks
// a Future still holds.
func (s *Scheduler) DebugOrder() ([]string, error) {
	order, err := s.queue.DebugOrder()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(order))
	for i, id := range order {
		ids[i] = id.String()
	}
	return ids, nil
}
