// Package timer implements the single-task focus countdown.
//
// The timer is driven by one actor: user actions and clock ticks are
// delivered on the same goroutine. Each run of the clock carries a
// generation number; pausing, stopping or resetting bumps the generation so
// a tick that was already in flight is discarded instead of decrementing a
// fresh countdown.
package timer

import (
	"errors"
	"fmt"

	"tableflip.dev/timebox/pkg/task"
)

// Length is the focus period in seconds.
const Length = 25 * 60

// State is the timer state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNoTaskSelected is returned when starting without a selected task.
	ErrNoTaskSelected = errors.New("timer: select a task first")
	// ErrNotPaused is returned when resuming a timer that is not paused, or
	// that was paused before any time elapsed.
	ErrNotPaused = errors.New("timer: not paused")
	// ErrRunning is returned when resetting or starting a running timer.
	ErrRunning = errors.New("timer: running")
	// ErrNotRunning is returned for pause or stop on an idle timer.
	ErrNotRunning = errors.New("timer: not running")
)

// Clock delivers one-second ticks tagged with a generation to the owning
// actor, which hands them back through Timer.Tick.
type Clock interface {
	Start(gen uint64)
	Stop()
}

// Completer marks a task completed. schedule.Store satisfies it.
type Completer interface {
	CompleteTask(id string)
}

// Timer is the focus countdown state machine.
type Timer struct {
	state     State
	remaining int
	gen       uint64
	selected  *task.Task

	clock     Clock
	completer Completer
}

// New returns an idle timer with a full period.
func New(clock Clock, completer Completer) *Timer {
	return &Timer{
		state:     Idle,
		remaining: Length,
		clock:     clock,
		completer: completer,
	}
}

// SetCompleter swaps the completion target, e.g. after the day changes.
func (t *Timer) SetCompleter(c Completer) {
	t.completer = c
}

// State returns the current state.
func (t *Timer) State() State { return t.state }

// Remaining returns the seconds left.
func (t *Timer) Remaining() int { return t.remaining }

// Generation identifies the current clock run.
func (t *Timer) Generation() uint64 { return t.gen }

// Progress is the elapsed fraction of the period in [0, 1].
func (t *Timer) Progress() float64 {
	return 1 - float64(t.remaining)/float64(Length)
}

// Select sets the task the timer works on. Selection may change while
// running; completion goes to whichever task is selected when Stop fires.
func (t *Timer) Select(tk *task.Task) {
	t.selected = tk.Clone()
}

// Selected returns the selected task, or nil.
func (t *Timer) Selected() *task.Task {
	return t.selected.Clone()
}

// Start begins a countdown from Idle.
func (t *Timer) Start() error {
	switch t.state {
	case Running, Paused:
		return ErrRunning
	}
	if t.selected == nil {
		return ErrNoTaskSelected
	}
	t.run()
	return nil
}

// Pause freezes the countdown.
func (t *Timer) Pause() error {
	if t.state != Running {
		return ErrNotRunning
	}
	t.halt()
	t.state = Paused
	return nil
}

// Resume continues a paused countdown from the frozen value.
func (t *Timer) Resume() error {
	if t.state != Paused || t.remaining >= Length {
		return ErrNotPaused
	}
	t.run()
	return nil
}

// Stop ends the run, refills the period and completes the selected task.
func (t *Timer) Stop() error {
	switch t.state {
	case Running, Paused, Expired:
	default:
		return ErrNotRunning
	}
	t.halt()
	t.state = Idle
	t.remaining = Length
	if t.selected != nil {
		t.selected.Completed = true
		if t.completer != nil {
			t.completer.CompleteTask(t.selected.ID)
		}
	}
	return nil
}

// Reset refills the period without completing anything. Not allowed while
// running.
func (t *Timer) Reset() error {
	if t.state == Running {
		return ErrRunning
	}
	t.halt()
	t.state = Idle
	t.remaining = Length
	return nil
}

// Tick applies one clock tick. Ticks from an older generation or arriving
// outside Running are ignored. It reports whether this tick expired the
// timer, in which case the run has already been stopped.
func (t *Timer) Tick(gen uint64) bool {
	if gen != t.gen || t.state != Running {
		return false
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining > 0 {
		return false
	}
	t.state = Expired
	_ = t.Stop()
	return true
}

func (t *Timer) run() {
	t.gen++
	t.state = Running
	if t.clock != nil {
		t.clock.Start(t.gen)
	}
}

func (t *Timer) halt() {
	t.gen++
	if t.clock != nil {
		t.clock.Stop()
	}
}

// Format renders seconds as MM:SS.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
