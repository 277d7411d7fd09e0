// Package carryover provides the runner that copies unfinished tasks from an
// earlier day into the open one.
package carryover

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/task"
)

// Carryover copies unfinished tasks of From into the open day's notes.
type Carryover struct {
	Service *app.Service
	From    string
	IDs     []string
	// Confirmer, when set, is asked about each candidate.
	Confirmer session.Confirmer
	JSON      bool
	Out       io.Writer
}

// Do executes the carry over and saves the open day.
func (c *Carryover) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not carry over, no service")
	}
	ids := c.IDs
	if c.Confirmer != nil {
		candidates, err := c.Service.CarryoverCandidates(ctx, c.From)
		if err != nil {
			return err
		}
		ids = ids[:0:0]
		for _, cand := range candidates {
			if len(c.IDs) > 0 && !contains(c.IDs, cand.Task.ID) {
				continue
			}
			ok, err := c.Confirmer.Confirm(ctx, fmt.Sprintf("Carry over %q", cand.Task.Content))
			if err != nil {
				return err
			}
			if ok {
				ids = append(ids, cand.Task.ID)
			}
		}
		if len(ids) == 0 {
			return c.print(nil)
		}
	}

	copied, err := c.Service.Carryover(ctx, c.From, ids...)
	if err != nil {
		return err
	}
	if len(copied) > 0 {
		if err := c.Service.Save(ctx); err != nil {
			return err
		}
	}
	return c.print(copied)
}

func (c *Carryover) print(copied []*task.Task) error {
	if c.JSON {
		if copied == nil {
			copied = []*task.Task{}
		}
		return printers.JSON(c.Out, copied)
	}
	pp := printers.PrettyPrint{ShowID: true, Out: c.Out}
	pp.NewLine()
	pp.Notes(fmt.Sprintf("Carried over from %s", c.From), copied...)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
