package task

import (
	"testing"

	"github.com/taskspace/taskspace/internal/texec"
)

func newTestBase(kind Kind) *Base {
	return NewBase(kind, Regular, func(self *Base, ex *texec.Exec) (any, error) {
		return nil, nil
	}, 0)
}

func TestNewBaseStartsAtRefCountTwo(t *testing.T) {
	b := newTestBase(KindSingle)
	if b.RefCount.Load() != 2 {
		t.Errorf("expected RefCount == 2, got %d", b.RefCount.Load())
	}
}

func TestRetainRelease(t *testing.T) {
	b := newTestBase(KindSingle)
	if got := b.Retain(); got != 3 {
		t.Errorf("Retain() = %d, want 3", got)
	}
	if got := b.Release(); got != 2 {
		t.Errorf("Release() = %d, want 2", got)
	}
}

func TestPriorityMutation(t *testing.T) {
	b := NewBase(KindSingle, Low, nil, 0)
	if b.Priority() != Low {
		t.Fatalf("expected initial priority Low, got %s", b.Priority())
	}
	b.SetPriority(High)
	if b.Priority() != High {
		t.Errorf("expected priority High after SetPriority, got %s", b.Priority())
	}
}

func TestTryAddWaiterBeforeCompletion(t *testing.T) {
	dep := newTestBase(KindSingle)
	w1 := newTestBase(KindSingle)
	w2 := newTestBase(KindSingle)

	if !dep.TryAddWaiter(w1) {
		t.Fatal("expected first TryAddWaiter to succeed")
	}
	if !dep.TryAddWaiter(w2) {
		t.Fatal("expected second TryAddWaiter to succeed")
	}

	waiters := dep.Complete()
	if len(waiters) != 2 {
		t.Fatalf("expected 2 waiters, got %d", len(waiters))
	}
	// Complete returns newest-first (LIFO), matching push order.
	if waiters[0] != w2 || waiters[1] != w1 {
		t.Error("expected waiters in LIFO order [w2, w1]")
	}
}

func TestTryAddWaiterAfterCompletionFails(t *testing.T) {
	dep := newTestBase(KindSingle)
	dep.Complete()

	w := newTestBase(KindSingle)
	if dep.TryAddWaiter(w) {
		t.Error("expected TryAddWaiter to fail once dep has completed")
	}
}

func TestIsCompleteTracksWaitHead(t *testing.T) {
	b := newTestBase(KindSingle)
	if b.IsComplete() {
		t.Fatal("expected fresh task to not be complete")
	}
	b.Complete()
	if !b.IsComplete() {
		t.Error("expected task to be complete after Complete()")
	}
}

func TestCompleteIsIdempotentAboutWaitHead(t *testing.T) {
	b := newTestBase(KindSingle)
	first := b.Complete()
	second := b.Complete()
	if len(first) != 0 || len(second) != 0 {
		t.Error("expected no waiters when none were ever added")
	}
	if b.WaitHead.Load() != LockTag {
		t.Error("expected WaitHead to remain LockTag after a second Complete call")
	}
}

func TestRequestRespawnAndTakeRespawn(t *testing.T) {
	b := newTestBase(KindSingle)
	dep := newTestBase(KindSingle)

	b.RequestRespawn(dep, High)

	gotDep, gotPriority, ok := b.TakeRespawn()
	if !ok {
		t.Fatal("expected TakeRespawn to report a pending respawn")
	}
	if gotDep != dep {
		t.Error("expected TakeRespawn to return the requested dependence")
	}
	if gotPriority != High {
		t.Errorf("expected priority High, got %s", gotPriority)
	}

	if _, _, ok := b.TakeRespawn(); ok {
		t.Error("expected a second TakeRespawn to report nothing pending")
	}
}

func TestRequestRespawnWithNilDep(t *testing.T) {
	b := newTestBase(KindSingle)
	b.RequestRespawn(nil, Regular)

	dep, _, ok := b.TakeRespawn()
	if !ok {
		t.Fatal("expected TakeRespawn to report a pending respawn")
	}
	if dep != nil {
		t.Error("expected nil dependence to round-trip as nil")
	}
}

func TestStateTransitions(t *testing.T) {
	b := newTestBase(KindSingle)
	if b.State() != StateConstructing {
		t.Fatalf("expected initial state Constructing, got %s", b.State())
	}
	b.SetState(StateReady)
	if b.State() != StateReady {
		t.Errorf("expected state Ready, got %s", b.State())
	}
}

func TestAggregateSizeIncludesTrailingArray(t *testing.T) {
	base := AggregateSize(0)
	withFive := AggregateSize(5)
	if withFive <= base {
		t.Errorf("expected AggregateSize(5) > AggregateSize(0), got %d <= %d", withFive, base)
	}
}
