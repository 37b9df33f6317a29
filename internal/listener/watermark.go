package listener

import (
	"sync"
)

// watermark tracks the events of one stream handed to the worker pool.
// Events are added in block order and may finish in any order; the
// watermark is the highest block at or below which every added event
// has finished.
type watermark struct {
	mu        sync.Mutex
	pending   map[uint64]int
	started   bool
	finished  uint64
	committed uint64
}

func newWatermark() *watermark {
	return &watermark{pending: make(map[uint64]int)}
}

func (w *watermark) add(block uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started && block > 0 {
		// nothing below the first block is owed to this run
		w.committed = block - 1
	}
	w.started = true
	w.pending[block]++
}

// done marks one event of block as finished. It returns the block the
// cursor may advance to, or false when the watermark has not moved.
func (w *watermark) done(block uint64) (uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n := w.pending[block]; n > 1 {
		w.pending[block] = n - 1
	} else {
		delete(w.pending, block)
	}
	if block > w.finished {
		w.finished = block
	}

	safe := w.finished
	for b := range w.pending {
		if b > safe {
			continue
		}
		if b == 0 {
			return 0, false
		}
		safe = b - 1
	}

	if safe <= w.committed {
		return 0, false
	}
	w.committed = safe
	return safe, true
}
