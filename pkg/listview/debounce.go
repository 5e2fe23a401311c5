package listview

import (
	"strings"
	"sync"
	"time"
)

// MinSearchChars is the threshold below which keystrokes do not fire a
// fetch. An emptied search box still fires, so clearing works.
const MinSearchChars = 3

// Debouncer coalesces free-text keystrokes into one delayed apply. The
// timer is cleared and restarted on every keystroke and unconditionally on
// Close.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	fire  func(text string)
	done  bool
}

func NewDebouncer(delay time.Duration, fire func(text string)) *Debouncer {
	return &Debouncer{delay: delay, fire: fire}
}

// Input registers a keystroke. Text shorter than the threshold (but not
// empty) only resets the timer without scheduling a fire.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	trimmed := strings.TrimSpace(text)
	if trimmed != "" && len(trimmed) < MinSearchChars {
		return
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.done {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.fire(trimmed)
	})
}

// Close stops any scheduled fire. Page teardown must call it.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.done = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
