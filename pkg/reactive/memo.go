package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation over one or more sources. When any
// source changes, the memo is invalidated and recomputes lazily on the
// next Get.
//
// Memos can themselves be subscribed to, so chains of derived values
// compose: cart items -> subtotal -> total.
type Memo[T any] struct {
	id uint64

	// compute is the function that computes the memo's value.
	compute func() T

	// value is the cached computed value.
	value T

	// valueMu protects value access.
	valueMu sync.RWMutex

	// valid indicates whether the cached value is current.
	valid atomic.Bool

	// subs are downstream listeners.
	subs  []Listener
	subMu sync.RWMutex

	// unsubs detach this memo from its sources on Dispose.
	unsubs []func()
}

// NewMemo creates a memo computed by fn whenever any of the given
// sources changes. The computation does not run until the first Get.
func NewMemo[T any](fn func() T, sources ...Source) *Memo[T] {
	m := &Memo[T]{
		id:      nextID(),
		compute: fn,
	}
	for _, src := range sources {
		m.unsubs = append(m.unsubs, src.Subscribe(m))
	}
	return m
}

// Get returns the memo's value, recomputing it if a source changed
// since the last read.
func (m *Memo[T]) Get() T {
	if m.valid.Load() {
		m.valueMu.RLock()
		v := m.value
		m.valueMu.RUnlock()
		return v
	}

	v := m.compute()
	m.valueMu.Lock()
	m.value = v
	m.valueMu.Unlock()
	m.valid.Store(true)
	return v
}

// MarkDirty invalidates the cached value and notifies downstream
// listeners. Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	m.valid.Store(false)

	m.subMu.RLock()
	subs := make([]Listener, len(m.subs))
	copy(subs, m.subs)
	m.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// ID returns the unique identifier for this memo.
// Implements the Listener interface.
func (m *Memo[T]) ID() uint64 {
	return m.id
}

// Subscribe adds a downstream listener and returns its unsubscribe
// function. Implements the Source interface.
func (m *Memo[T]) Subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}

	m.subMu.Lock()
	lid := l.ID()
	exists := false
	for _, existing := range m.subs {
		if existing.ID() == lid {
			exists = true
			break
		}
	}
	if !exists {
		m.subs = append(m.subs, l)
	}
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, existing := range m.subs {
			if existing.ID() == lid {
				m.subs[i] = m.subs[len(m.subs)-1]
				m.subs = m.subs[:len(m.subs)-1]
				return
			}
		}
	}
}

// Dispose detaches the memo from its sources. Further source changes
// no longer invalidate it.
func (m *Memo[T]) Dispose() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}
