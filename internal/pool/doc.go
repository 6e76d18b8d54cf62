// Package pool implements MemoryPool: the bounded block allocator the core
// task queue draws task records from.
//
// Allocation here is admission control, not raw memory placement: Allocate
// reserves a size-class-rounded byte budget atomically, and the caller
// (internal/queue) still uses Go's own allocator (new(task.Base)) for the
// backing memory. This keeps MemoryPool's bookkeeping block-aligned without
// resorting to unsafe.Pointer placement-new, which Go's garbage collector
// would not tolerate well for GC-managed struct types.
package pool
