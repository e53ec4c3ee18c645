// Package reactive provides the observable-state primitives that the
// shopkit stores are built on.
//
// Signal[T] is a mutable value container with an explicit
// subscribe/notify contract: every mutation notifies the subscribed
// listeners, and Subscribe returns the matching unsubscribe function.
// Memo[T] derives a cached value from one or more sources. Batch
// coalesces a group of mutations into a single notification phase.
// Action[A, R] wraps an asynchronous operation (a simulated network
// call in this module) with observable Idle/Running/Success/Error
// state and a duplicate-submission policy.
//
// The package is safe for concurrent use, but the stores built on it
// assume the storefront's single logical event thread: mutations are
// driven by user events, never by competing goroutines.
package reactive
