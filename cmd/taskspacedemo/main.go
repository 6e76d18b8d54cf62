// Command taskspacedemo runs a small fixed workload through a
// taskspace.Scheduler while a bubbletea dashboard renders the queue's
// lifecycle events and allocator counters live: an event bus feeding a
// bubbletea program running in its own goroutine, with signal-aware
// shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskspace/taskspace"
	"github.com/taskspace/taskspace/internal/events"
	"github.com/taskspace/taskspace/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := taskspace.DefaultSchedulerConfig()
	sched, err := taskspace.NewScheduler(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scheduler: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewBus()
	defer bus.Close()
	sched.Events(bus)

	model := tui.New(bus)
	p := tea.NewProgram(model, tea.WithAltScreen())

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	go pollStats(ctx, p, sched)
	go runWorkload(sched)

	select {
	case err := <-errChan:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		stop()
		p.Quit()
		<-errChan
	}
}

// pollStats periodically pushes an allocator snapshot into the TUI; the
// scheduler has no push-based counter feed, only the lifecycle event bus, so
// the demo samples it on a ticker instead.
func pollStats(ctx context.Context, p *tea.Program, sched *taskspace.Scheduler) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Send(tui.StatsMsg{
				Capacity:       sched.AllocationCapacity(),
				Allocated:      sched.AllocatedTaskCount(),
				AllocatedMax:   sched.AllocatedTaskCountMax(),
				AllocatedAccum: sched.AllocatedTaskCountAccum(),
			})
		}
	}
}

// runWorkload spawns a small fan-out/fan-in/respawn demo so the dashboard has
// something to show: a linear chain, a fan-in via WhenAll, a team task, and
// one respawning task that reschedules itself once before completing.
func runWorkload(sched *taskspace.Scheduler) {
	first := taskspace.HostSpawn(sched, taskspace.TaskSingle(taskspace.Regular), func(c *taskspace.Context) (int, error) {
		return 1, nil
	})

	second := taskspace.HostSpawn(sched, taskspace.TaskSingleOn(first, taskspace.Regular), func(c *taskspace.Context) (int, error) {
		v, err := first.Get()
		if err != nil {
			return 0, err
		}
		return v + 1, nil
	})

	branchA := taskspace.HostSpawn(sched, taskspace.TaskSingle(taskspace.High), func(c *taskspace.Context) (int, error) {
		return 10, nil
	})
	branchB := taskspace.HostSpawn(sched, taskspace.TaskSingle(taskspace.Low), func(c *taskspace.Context) (int, error) {
		return 20, nil
	})

	join := taskspace.WhenAll(sched, branchA, branchB)

	// teamSize 0 defers to the scheduler's configured DefaultTeamSize.
	team := taskspace.HostSpawn(sched, taskspace.TaskTeam(taskspace.Regular, 0), func(c *taskspace.Context) (int, error) {
		return c.TeamRank(), nil
	})

	respawns := 0
	resp := taskspace.HostSpawn(sched, taskspace.TaskSingle(taskspace.Regular), func(c *taskspace.Context) (int, error) {
		if respawns == 0 {
			respawns++
			taskspace.Respawn(c, nil, taskspace.Regular)
			return 0, nil
		}
		return 99, nil
	})

	if err := taskspace.Wait(sched); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "workload error: %v\n", err)
	}

	_, _ = second.Get()
	_, _ = join.Get()
	_, _ = team.Get()
	_, _ = resp.Get()
}
