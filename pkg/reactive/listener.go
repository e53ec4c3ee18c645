package reactive

import "sync/atomic"

// Listener is anything that can be notified when an observable value
// changes. Stores, memos, and ad-hoc watchers all implement it.
type Listener interface {
	// MarkDirty notifies the listener that one of its sources has changed.
	// For memos, this invalidates the cached value.
	// For watchers, this invokes the callback.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Source is anything a Listener can subscribe to.
// Both Signal[T] and Memo[T] satisfy it.
type Source interface {
	// Subscribe registers the listener and returns its unsubscribe
	// function. Subscribing the same listener twice is a no-op.
	Subscribe(l Listener) (unsubscribe func())
}

var idCounter uint64

// nextID returns a process-unique listener/source identifier.
func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}

// watcher adapts a plain function to the Listener interface.
type watcher struct {
	id uint64
	fn func()
}

func (w *watcher) MarkDirty() { w.fn() }
func (w *watcher) ID() uint64 { return w.id }

// NewWatcher wraps fn in a Listener. Each call returns a distinct
// listener identity, so the same function can be subscribed to
// multiple sources independently.
func NewWatcher(fn func()) Listener {
	return &watcher{id: nextID(), fn: fn}
}
