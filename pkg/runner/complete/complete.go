// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/runner/show"
)

// Complete marks a task as completed.
type Complete struct {
	ID      string
	Service *app.Service
	Lang    i18n.Strings
	JSON    bool
	Out     io.Writer
}

// Do executes the completion for the configured task ID and prints the day.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}
	t, err := n.Service.Complete(n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.Save(ctx); err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, t)
	}
	if n.Lang.Code == "" {
		n.Lang = i18n.Lookup("en")
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	sel, _ := n.Service.Selection()
	show.Print(&pp, n.Lang, n.Service, n.Service.View(sel))
	return nil
}
