package queue

import "sync/atomic"

// atomicCounter is a thin atomic.Int64 wrapper adding a lock-free
// high-water-mark update, used by the allocation and executing counters.
type atomicCounter struct {
	v atomic.Int64
}

func (c *atomicCounter) Add(delta int64) int64 { return c.v.Add(delta) }
func (c *atomicCounter) Load() int64           { return c.v.Load() }

// Raise CASes v up to n if n is larger than the current value.
func (c *atomicCounter) Raise(n int64) {
	for {
		cur := c.v.Load()
		if n <= cur || c.v.CompareAndSwap(cur, n) {
			return
		}
	}
}
