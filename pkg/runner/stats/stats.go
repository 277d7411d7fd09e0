// Package stats provides the runner that totals the day per tag.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
)

// Stats prints task counts and minutes per tag for the open day.
type Stats struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

// Output is the JSON form of the totals.
type Output struct {
	Date  string          `json:"date"`
	ByTag []analytics.Row `json:"byTag"`
	Total analytics.Row   `json:"total"`
}

// Do computes and prints the totals.
func (s *Stats) Do(_ context.Context) error {
	if s.Service == nil {
		return errors.New("can not compute stats, no service")
	}
	out := Output{
		Date:  s.Service.Date(),
		ByTag: s.Service.Stats(),
		Total: analytics.Total(s.Service.Day().Tasks()),
	}
	if s.JSON {
		return printers.JSON(s.Out, out)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.NewLine()
	pp.Title(fmt.Sprintf("Stats · %s", out.Date))
	pp.Stats(out.ByTag, out.Total)
	return nil
}
