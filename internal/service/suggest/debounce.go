package suggest

import (
	"sync"
	"time"
)

// DefaultSettle is the quiet period before a keystroke triggers a fetch.
const DefaultSettle = 350 * time.Millisecond

// Debouncer runs only the most recent callback once input has been quiet
// for the settle window.
type Debouncer struct {
	mu      sync.Mutex
	settle  time.Duration
	timer   *time.Timer
	gen     uint64
	pending func()
	running sync.WaitGroup
}

// NewDebouncer creates a debouncer. A non-positive settle uses DefaultSettle.
func NewDebouncer(settle time.Duration) *Debouncer {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Debouncer{settle: settle}
}

// Trigger schedules fn, cancelling any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.settle, func() {
		if run := d.take(gen); run != nil {
			defer d.running.Done()
			run()
		}
	})
}

// Flush runs the pending callback immediately on the calling goroutine,
// then waits for callbacks that already fired.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	run := d.pending
	d.stopLocked()
	d.mu.Unlock()

	if run != nil {
		run()
	}
	d.running.Wait()
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Debouncer) take(gen uint64) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen {
		return nil
	}
	run := d.pending
	d.pending = nil
	d.timer = nil
	d.gen++
	if run != nil {
		d.running.Add(1)
	}
	return run
}

// stopLocked invalidates the current timer. d.mu must be held.
func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.gen++
}
