// Package priority provides the runner that sets the day's priorities.
package priority

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/schedule"
)

// Set replaces priority N (1..3) with Text. Empty text clears it.
type Set struct {
	Service *app.Service
	Lang    i18n.Strings
	N       int
	Text    string
	JSON    bool
	Out     io.Writer
}

// Do executes the update and prints the priorities.
func (p *Set) Do(ctx context.Context) error {
	if p.Service == nil {
		return errors.New("can not set priority, no service")
	}
	if p.N < 1 || p.N > schedule.PriorityCount {
		return fmt.Errorf("priority must be between 1 and %d", schedule.PriorityCount)
	}
	if err := p.Service.SetPriority(p.N, p.Text); err != nil {
		return err
	}
	if err := p.Service.Save(ctx); err != nil {
		return err
	}
	priorities := p.Service.Day().Priorities()
	if p.JSON {
		return printers.JSON(p.Out, priorities)
	}
	if p.Lang.Code == "" {
		p.Lang = i18n.Lookup("en")
	}
	pp := printers.PrettyPrint{Out: p.Out}
	pp.Priorities(p.Lang.Priorities.Title, priorities)
	return nil
}
