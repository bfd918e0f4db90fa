// Package debounce coalesces bursts of events into one action per quiet period.
//
// A Timer never runs anything itself. Trigger hands bubbletea a tick command
// tagged with a sequence number; when the tick comes back as a Msg, Fire tells
// the call site whether it is still the latest one. Every Trigger implicitly
// cancels the previous pending tick.
package debounce

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Common delays.
const (
	StyleSync = 100 * time.Millisecond
	Highlight = 35 * time.Millisecond
	Toast     = 2200 * time.Millisecond
)

// Msg is delivered when a scheduled tick elapses.
type Msg struct {
	ID  string
	seq uint64
}

// Timer is a cancel-and-reschedule primitive owned by one call site.
type Timer struct {
	id    string
	delay time.Duration
	seq   uint64
	armed bool
}

// New returns a timer identified by id.
func New(id string, delay time.Duration) *Timer {
	return &Timer{id: id, delay: delay}
}

// ID returns the timer identifier carried by its messages.
func (t *Timer) ID() string { return t.id }

// Delay returns the quiet period.
func (t *Timer) Delay() time.Duration { return t.delay }

// Trigger reschedules the timer and returns the tick command.
func (t *Timer) Trigger() tea.Cmd {
	return t.TriggerAfter(t.delay)
}

// TriggerAfter reschedules with a one-off delay.
func (t *Timer) TriggerAfter(d time.Duration) tea.Cmd {
	t.seq++
	t.armed = true
	msg := Msg{ID: t.id, seq: t.seq}
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Fire reports whether msg is the latest tick of this timer and disarms it.
// Stale ticks and ticks of other timers return false.
func (t *Timer) Fire(msg Msg) bool {
	if msg.ID != t.id || msg.seq != t.seq || !t.armed {
		return false
	}
	t.armed = false
	return true
}

// Cancel drops the pending tick, if any.
func (t *Timer) Cancel() {
	t.seq++
	t.armed = false
}

// Pending reports whether a tick is scheduled and not yet fired.
func (t *Timer) Pending() bool { return t.armed }
