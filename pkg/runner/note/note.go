// Package note provides runners that add, remove and tag unscheduled tasks.
package note

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timeutil"
)

// Add creates a note, with optional tags and duration, and saves the day.
type Add struct {
	Service  *app.Service
	Content  string
	Tags     []string
	Duration string
	JSON     bool
	Out      io.Writer
}

// Do executes the add.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	var minutes *int
	if n.Duration != "" {
		m, err := timeutil.ParseMinutes(n.Duration)
		if err != nil {
			return err
		}
		minutes = &m
	}
	// Resolve tags before mutating so a typo leaves the day untouched.
	if _, err := n.Service.Selection(n.Tags...); err != nil {
		return err
	}

	t, err := n.Service.AddNote(n.Content)
	if err != nil {
		return err
	}
	for _, ref := range n.Tags {
		if t, err = n.Service.ToggleTag(t.ID, ref); err != nil {
			return err
		}
	}
	if minutes != nil {
		if t, err = n.Service.SetDuration(t.ID, *minutes); err != nil {
			return err
		}
	}
	return saveAndPrint(ctx, n.Service, t, n.JSON, n.Out)
}

// Remove deletes a note and saves the day.
type Remove struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

// Do executes the removal.
func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	t, _, err := n.Service.Find(n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.DeleteNote(n.ID); err != nil {
		return err
	}
	return saveAndPrint(ctx, n.Service, t, n.JSON, n.Out)
}

// Tag toggles tags on a task and saves the day.
type Tag struct {
	Service *app.Service
	ID      string
	Tags    []string
	JSON    bool
	Out     io.Writer
}

// Do executes the toggle.
func (n *Tag) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not tag, no service")
	}
	if len(n.Tags) == 0 {
		return errors.New("requires at least one tag")
	}
	if _, err := n.Service.Selection(n.Tags...); err != nil {
		return err
	}
	var t *task.Task
	var err error
	for _, ref := range n.Tags {
		if t, err = n.Service.ToggleTag(n.ID, ref); err != nil {
			return err
		}
	}
	return saveAndPrint(ctx, n.Service, t, n.JSON, n.Out)
}

// Edit rewrites a task's text or duration and saves the day.
type Edit struct {
	Service  *app.Service
	ID       string
	Content  string
	Duration string
	JSON     bool
	Out      io.Writer
}

// Do executes the edit.
func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Content == "" && n.Duration == "" {
		return errors.New("nothing to change")
	}
	t, _, err := n.Service.Find(n.ID)
	if err != nil {
		return err
	}
	if n.Duration != "" {
		m, err := timeutil.ParseMinutes(n.Duration)
		if err != nil {
			return err
		}
		if t, err = n.Service.SetDuration(n.ID, m); err != nil {
			return err
		}
	}
	if n.Content != "" {
		if t, err = n.Service.Edit(n.ID, n.Content); err != nil {
			return err
		}
	}
	return saveAndPrint(ctx, n.Service, t, n.JSON, n.Out)
}

func saveAndPrint(ctx context.Context, svc *app.Service, t *task.Task, asJSON bool, out io.Writer) error {
	if err := svc.Save(ctx); err != nil {
		return err
	}
	if asJSON {
		return printers.JSON(out, t)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Task(t)
	return nil
}
