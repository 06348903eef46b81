package engine

import "time"

// DefaultDebounce is the text-change coalescing window.
const DefaultDebounce = 400 * time.Millisecond

// Debouncer coalesces a burst of triggers into one invocation.
// Trigger replaces any pending invocation; only the last function
// registered within a window ever runs.
type Debouncer interface {
	Trigger(fn func())
	Stop()
}

// timerDebouncer runs the pending function after a fixed delay,
// restarting the clock on each trigger.
type timerDebouncer struct {
	d     time.Duration
	timer *time.Timer
}

// NewDebouncer returns the default wall-clock debouncer. It fires fn
// on a timer goroutine, so a host that touches the controller, graph
// or editor from its own loop must instead inject a debouncer that
// fires on that loop (see ManualDebouncer and the watch command);
// the controller itself does no locking.
func NewDebouncer(d time.Duration) Debouncer {
	return &timerDebouncer{d: d}
}

func (t *timerDebouncer) Trigger(fn func()) {
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.d, fn)
}

func (t *timerDebouncer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// ManualDebouncer holds the pending function until Fire is called.
// Test clock: no real time passes.
type ManualDebouncer struct {
	pending  func()
	Triggers int
}

func (m *ManualDebouncer) Trigger(fn func()) {
	m.pending = fn
	m.Triggers++
}

func (m *ManualDebouncer) Stop() {
	m.pending = nil
}

// Fire runs the pending function, if any, and clears it.
func (m *ManualDebouncer) Fire() {
	fn := m.pending
	m.pending = nil
	if fn != nil {
		fn()
	}
}
