// Package task implements TaskBase: the reference-counted task record that
// underlies every spawned task. It owns the atomic state machine
// (Constructing -> Waiting -> Executing -> Respawn|Complete), the intrusive
// waiter-list CAS primitives, and the LockTag completion sentinel.
//
// This package is deliberately free of any dependency on internal/queue: the
// queue drives tasks through this state machine, but a Base never reaches
// back into its owning queue directly.
package task
