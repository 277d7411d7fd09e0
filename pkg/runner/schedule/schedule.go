// Package schedule provides runners that place tasks into half-hour slots.
package schedule

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/task"
)

// Drop schedules a note, or moves an already scheduled task, into a slot.
type Drop struct {
	Service *app.Service
	ID      string
	At      string
	JSON    bool
	Out     io.Writer
}

// Do executes the drop.
func (s *Drop) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not schedule, no service")
	}
	t, err := s.Service.Schedule(s.ID, s.At)
	if err != nil {
		return err
	}
	return finish(ctx, s.Service, t, s.JSON, s.Out)
}


// Move moves a scheduled task between slots.
type Move struct {
	Service *app.Service
	ID      string
	From    string
	To      string
	JSON    bool
	Out     io.Writer
}

// Do executes the move.
func (s *Move) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not move, no service")
	}
	if err := s.Service.Move(s.ID, s.From, s.To); err != nil {
		return err
	}
	t, _, err := s.Service.Find(s.ID)
	if err != nil {
		return err
	}
	return finish(ctx, s.Service, t, s.JSON, s.Out)
}

// Unschedule returns a scheduled task to the notes.
type Unschedule struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

// Do executes the unschedule.
func (s *Unschedule) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not unschedule, no service")
	}
	if err := s.Service.Unschedule(s.ID); err != nil {
		return err
	}
	t, _, err := s.Service.Find(s.ID)
	if err != nil {
		return err
	}
	return finish(ctx, s.Service, t, s.JSON, s.Out)
}

func finish(ctx context.Context, svc *app.Service, t *task.Task, asJSON bool, out io.Writer) error {
	if err := svc.Save(ctx); err != nil {
		return err
	}
	_, loc, _ := svc.Find(t.ID)
	if asJSON {
		return printers.JSON(out, struct {
			Task *task.Task `json:"task"`
			Slot string     `json:"slot,omitempty"`
		}{Task: t, Slot: loc.Slot})
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Title(loc.String())
	pp.Task(t)
	return nil
}
