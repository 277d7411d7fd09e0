// Package focus provides the runner that drives the focus timer in a
// terminal.
package focus

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timer"
)

// Picker chooses a task when no id was given.
type Picker interface {
	Task(label string, tasks []*task.Task) (*task.Task, error)
}

// Focus counts down on one task. Expiry completes the task and saves the
// day; canceling ctx resets the timer without completing anything.
type Focus struct {
	Service *app.Service
	// Ticks must be the channel of the Clock the service's timer was built
	// with.
	Ticks  <-chan uint64
	ID     string
	Picker Picker
	Out    io.Writer
}

// Do runs the countdown until it expires or ctx is done.
func (f *Focus) Do(ctx context.Context) error {
	if f.Service == nil {
		return errors.New("can not focus, no service")
	}
	if f.Ticks == nil {
		return errors.New("can not focus, no clock")
	}
	id, err := f.pick()
	if err != nil {
		return err
	}
	if err := f.Service.Focus(id); err != nil {
		return err
	}
	tm := f.Service.Timer()
	selected := tm.Selected()

	out := f.out()
	pp := printers.PrettyPrint{Out: out}
	pp.Title(fmt.Sprintf("Focus · %s", timer.Format(tm.Remaining())))
	pp.Task(selected)

	for {
		select {
		case <-ctx.Done():
			_ = tm.Pause()
			_ = tm.Reset()
			_, _ = fmt.Fprintln(out, "\nstopped, task left open")
			return nil
		case gen := <-f.Ticks:
			expired := tm.Tick(gen)
			_, _ = fmt.Fprintf(out, "\r%s %s", bar(tm.Progress(), 30), timer.Format(tm.Remaining()))
			if !expired {
				continue
			}
			_, _ = fmt.Fprintln(out)
			if err := f.Service.Save(ctx); err != nil {
				return err
			}
			done, _, err := f.Service.Find(selected.ID)
			if err != nil {
				return err
			}
			_, _ = color.New(color.FgGreen).Fprintln(out, "time's up")
			pp.Task(done)
			return nil
		}
	}
}

func (f *Focus) pick() (string, error) {
	if f.ID != "" || f.Picker == nil {
		if f.ID == "" {
			return "", errors.New("requires a task id")
		}
		return f.ID, nil
	}
	var open []*task.Task
	for _, t := range f.Service.Day().Tasks() {
		if !t.Completed {
			open = append(open, t)
		}
	}
	t, err := f.Picker.Task("Focus on", open)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func (f *Focus) out() io.Writer {
	if f.Out == nil {
		return color.Output
	}
	return f.Out
}

func bar(progress float64, width int) string {
	filled := int(progress * float64(width))
	filled = min(max(filled, 0), width)
	b := make([]rune, width)
	for i := range b {
		if i < filled {
			b[i] = '█'
		} else {
			b[i] = '░'
		}
	}
	return string(b)
}
