package reactive

import "sync"

// batchState holds the pending notifications for the current batch.
// The storefront runs mutations on a single logical thread, so a
// process-wide batch scope matches how the stores are driven.
var batchState struct {
	mu      sync.Mutex
	depth   int
	pending []Listener
}

// Batch groups multiple signal updates into a single notification
// phase. All updates inside fn are collected, deduplicated by listener
// ID, and delivered once when the outermost batch completes.
//
// Example:
//
//	reactive.Batch(func() {
//	    user.Set(nil)
//	    addresses.Set(nil)
//	    orders.Set(nil)
//	})
//	// Subscribers are notified once.
func Batch(fn func()) {
	batchState.mu.Lock()
	batchState.depth++
	batchState.mu.Unlock()

	defer func() {
		batchState.mu.Lock()
		batchState.depth--
		done := batchState.depth == 0
		var updates []Listener
		if done {
			updates = batchState.pending
			batchState.pending = nil
		}
		batchState.mu.Unlock()

		if done {
			flushPendingUpdates(updates)
		}
	}()

	fn()
}

func inBatch() bool {
	batchState.mu.Lock()
	defer batchState.mu.Unlock()
	return batchState.depth > 0
}

func queuePendingUpdate(l Listener) {
	batchState.mu.Lock()
	defer batchState.mu.Unlock()
	batchState.pending = append(batchState.pending, l)
}

// flushPendingUpdates deduplicates and notifies all pending listeners.
func flushPendingUpdates(updates []Listener) {
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}
