package task

// lockTagTarget backs the LockTag sentinel. It is never dereferenced for its
// field values; only its pointer identity matters.
var lockTagTarget Base

// LockTag is the distinguished value stored in a task's WaitHead once that
// task has entered the completion protocol. Any Schedule call that observes
// LockTag as a predecessor's wait head must route the would-be waiter
// directly to the ready queue instead of splicing onto the (now closed)
// waiter list. See Base.TryAddWaiter and Base.Complete.
var LockTag = &lockTagTarget

// EndTag is the empty-list sentinel: a task that has never had a waiter
// and has not started completing has WaitHead == EndTag (nil).
var EndTag *Base
