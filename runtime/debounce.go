package runtime

import (
	"sync"
	"time"
)

// Debouncer holds at most one pending call. Each Trigger replaces the
// previous one, so the call only runs once triggers stop for delay.
// A timer that already fired but lost the race against a newer Trigger
// is recognised by its sequence number and does nothing.
type Debouncer struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	timer   *time.Timer
	seq     uint64
	stopped bool
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

func (d *Debouncer) Trigger(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.cancelLocked()
	seq := d.seq
	d.wg.Add(1)
	d.timer = time.AfterFunc(delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		current := seq == d.seq && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop cancels the pending call, refuses new ones and waits for a call
// already running.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Debouncer) cancelLocked() {
	d.seq++
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.timer = nil
}
