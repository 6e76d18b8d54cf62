package taskspace

import "testing"

func TestTaskSingleOnNullFutureIsUnanchored(t *testing.T) {
	s := newTestScheduler(t, 4)

	f := HostSpawn(s, TaskSingleOn(Future[int]{}, Regular), func(c *Context) (int, error) {
		return 5, nil
	})
	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, err := f.Get(); err != nil || got != 5 {
		t.Errorf("expected an unanchored task to still run to completion, got %d, %v", got, err)
	}
}

func TestTaskSingleOnDependenceDelaysExecution(t *testing.T) {
	s := newTestScheduler(t, 4)

	ranFirst := ""
	waiterSawDepDone := false

	dep := HostSpawn(s, TaskSingle(Regular), func(c *Context) (int, error) {
		ranFirst = "dep"
		return 1, nil
	})
	HostSpawn(s, TaskSingleOn(dep, Regular), func(c *Context) (int, error) {
		waiterSawDepDone = ranFirst == "dep"
		return 2, nil
	})

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !waiterSawDepDone {
		t.Error("expected the dependence to have run before its waiter")
	}
}

func TestTaskTeamZeroSizeDefersToSchedulerDefault(t *testing.T) {
	s := newTestScheduler(t, 4)

	seenRanks := make(chan int, 4)
	f := HostSpawn(s, TaskTeam(Regular, 0), func(c *Context) (int, error) {
		seenRanks <- c.TeamRank()
		return c.TeamSize(), nil
	})

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, err := f.Get(); err != nil || got != DefaultSchedulerConfig().DefaultTeamSize {
		t.Errorf("expected TeamSize() to fall back to DefaultTeamSize, got %d, %v", got, err)
	}

	close(seenRanks)
	count := 0
	for range seenRanks {
		count++
	}
	if count != DefaultSchedulerConfig().DefaultTeamSize {
		t.Errorf("expected DefaultTeamSize team members to have run, got %d", count)
	}
}

func TestTaskTeamPolicyCarriesTeamSize(t *testing.T) {
	s := newTestScheduler(t, 4)

	seenRanks := make(chan int, 3)
	f := HostSpawn(s, TaskTeam(Regular, 3), func(c *Context) (int, error) {
		seenRanks <- c.TeamRank()
		return c.TeamSize(), nil
	})

	if err := Wait(s); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got, err := f.Get(); err != nil || got != 3 {
		t.Errorf("expected TeamSize() == 3 inside the functor, got %d, %v", got, err)
	}

	close(seenRanks)
	count := 0
	for range seenRanks {
		count++
	}
	if count != 3 {
		t.Errorf("expected 3 team members to have run, got %d", count)
	}
}
