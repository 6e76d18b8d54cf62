package taskspace

import "testing"

func TestAllocationCapacityMatchesConfig(t *testing.T) {
	cfg := DefaultSchedulerConfig()
	s, err := NewScheduler(cfg)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if got := s.AllocationCapacity(); uint64(got) != cfg.CapacityBytes {
		t.Errorf("expected AllocationCapacity() == %d, got %d", cfg.CapacityBytes, got)
	}
}

func TestAllocatedTaskCountTracksLiveTasks(t *testing.T) {
	s := newTestScheduler(t, 2)

	if s.AllocatedTaskCount() != 0 {
		t.Fatalf("expected 0 live tasks initially, got %d", s.AllocatedTaskCount())
	}

	f1 := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 1, nil })
	f2 := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 2, nil })

	if s.AllocatedTaskCount() != 2 {
		t.Errorf("expected 2 live tasks after two spawns, got %d", s.AllocatedTaskCount())
	}
	if s.AllocatedTaskCountAccum() != 2 {
		t.Errorf("expected lifetime accum == 2, got %d", s.AllocatedTaskCountAccum())
	}

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	f1.Close()
	f2.Close()

	if s.AllocatedTaskCount() != 0 {
		t.Errorf("expected 0 live tasks after closing both Futures, got %d", s.AllocatedTaskCount())
	}
	if s.AllocatedTaskCountAccum() != 2 {
		t.Errorf("expected lifetime accum to remain 2 after release, got %d", s.AllocatedTaskCountAccum())
	}
}

func TestAllocatedTaskCountMaxIsHighWaterMark(t *testing.T) {
	s := newTestScheduler(t, 2)

	f1 := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 1, nil })
	f2 := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 2, nil })
	if s.AllocatedTaskCountMax() != 2 {
		t.Fatalf("expected max == 2, got %d", s.AllocatedTaskCountMax())
	}

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	f1.Close()
	f2.Close()

	if s.AllocatedTaskCountMax() != 2 {
		t.Errorf("expected max to remain 2 after release, got %d", s.AllocatedTaskCountMax())
	}
}

func TestDebugOrderOrdersDependenceBeforeWaiter(t *testing.T) {
	s := newTestScheduler(t, 2)

	t1 := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) { return 1, nil })
	t2 := HostSpawn(s, TaskSingleOn(t1, Regular), func(c *Context) (int, error) {
		v, err := t1.Get()
		return v, err
	})

	order, err := s.DebugOrder()
	if err != nil {
		t.Fatalf("DebugOrder: %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("expected 2 live tasks in the debug order, got %d", len(order))
	}
	if order[0] != t1.b.ID.String() || order[1] != t2.b.ID.String() {
		t.Errorf("expected the dependence to precede its waiter in the debug order, got %v", order)
	}

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}
