package texec

import (
	"runtime"
	"time"
)

// sleepOrYield is the progress back-off used while a worker spins waiting
// on a barrier phase flip: yield first, then fall back to a short sleep so
// a stalled team does not pin a CPU core.
func sleepOrYield() {
	runtime.Gosched()
	time.Sleep(50 * time.Microsecond)
}

// Backoff is the same progress back-off, escalating with the caller's idle
// streak, used by TaskQueue's worker loop while the ready grid is empty but
// not yet quiescent.
func Backoff(idleStreak int) {
	if idleStreak < 4 {
		runtime.Gosched()
		return
	}
	time.Sleep(50 * time.Microsecond)
}
