// Package report provides the runner that lists completed tasks over a window
// of days.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/timeutil"
)

// Report prints completed tasks grouped by day.
type Report struct {
	Service *app.Service
	// Last is a window like "3d" or "1w2d".
	Last     string
	Calendar bool
	JSON     bool
	Out      io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// Do builds and prints the report.
func (r *Report) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not report, no service")
	}
	duration, label, err := timeutil.ParseWindow(r.Last)
	if err != nil {
		return err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	until := now()
	since := until.Add(-duration)

	result, err := r.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(r.Out, result)
	}
	r.render(result, label)
	return nil
}

func (r *Report) out() io.Writer {
	if r.Out == nil {
		return color.Output
	}
	return r.Out
}

func (r *Report) render(result app.ReportResult, label string) {
	out := r.out()
	since := result.Since.Local().Format("2006-01-02 15:04")
	until := result.Until.Local().Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(out, "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total.Completed == 0 {
		_, _ = fmt.Fprintln(out, "  No completed tasks found in this window.")
		_, _ = fmt.Fprintln(out)
		return
	}

	pp := printers.PrettyPrint{Out: out}
	counts := make(map[string]int, len(result.Sections))
	for _, section := range result.Sections {
		counts[section.Date] = section.Total.Completed
		if len(section.Done) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "\n%s  %d/%d done, %s\n", section.Date,
			section.Total.Completed, section.Total.Tasks, timeutil.FormatMinutes(section.Total.Minutes))
		for _, item := range section.Done {
			at := "     "
			if item.Slot != "" {
				at = fmt.Sprintf("%5s", item.Slot)
			}
			_, _ = fmt.Fprintf(out, "  %s ", at)
			pp.Task(item.Task)
		}
	}

	_, _ = fmt.Fprintln(out)
	pp.Stats(result.ByTag, result.Total)

	if r.Calendar {
		pp.Months(result.Since, result.Until, counts)
	}
	_, _ = fmt.Fprintln(out)
}
