// Package queue implements TaskQueue: the ready grid, the worker pool that
// drains it, and the Schedule/Complete protocol that moves tasks between
// Waiting and Ready. Dependence resolution uses lock-free waiter lists
// instead of a mutex-guarded task map, and the worker pool itself is
// errgroup-driven.
package queue
