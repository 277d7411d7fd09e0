// Package show provides the runner that prints one day.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/filter"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/task"
)

// Show prints the open day, optionally filtered by tags.
type Show struct {
	Service  *app.Service
	Lang     i18n.Strings
	Tags     []string
	Markdown bool
	ShowID   bool
	AllSlots bool
	JSON     bool
	Out      io.Writer
}

// Output is the JSON form of a printed day.
type Output struct {
	*session.DaySession
	Dirty bool     `json:"dirty"`
	Tags  []string `json:"filter,omitempty"`
}

// Do prints the day.
func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("can not show, no service")
	}
	if s.Lang.Code == "" {
		s.Lang = i18n.Lookup("en")
	}
	sel, err := s.Service.Selection(s.Tags...)
	if err != nil {
		return err
	}
	view := s.Service.View(sel)
	day := Filtered(s.Service, view)

	switch {
	case s.JSON:
		return printers.JSON(s.Out, Output{DaySession: day, Dirty: s.Service.Dirty(), Tags: sel.Tags().IDs()})
	case s.Markdown:
		out, err := printers.RenderMarkdown(printers.Markdown(s.Lang.Title, day), 80)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(s.out(), out)
		return nil
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, AllSlots: s.AllSlots, Out: s.Out}
	Print(&pp, s.Lang, s.Service, view)
	return nil
}

func (s *Show) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}

// Print renders a day view with pp.
func Print(pp *printers.PrettyPrint, lang i18n.Strings, svc *app.Service, view filter.View) {
	pp.NewLine()
	pp.Title(fmt.Sprintf("%s · %s", lang.Title, svc.Date()))
	pp.Saved(svc.SavedAt(), svc.Dirty())
	pp.NewLine()
	pp.Priorities(lang.Priorities.Title, svc.Day().Priorities())
	pp.Notes(lang.Notes.Notes, view.Notes...)
	pp.Schedule(lang.Schedule, view.Slots...)
}

// Filtered turns a view into a day session for output.
func Filtered(svc *app.Service, view filter.View) *session.DaySession {
	d := session.Empty(svc.Date())
	d.Priorities = svc.Day().Priorities()
	d.Notes = view.Notes
	d.SavedAt = task.Timestamp{Time: svc.SavedAt()}
	for _, sl := range view.Slots {
		if len(sl.Tasks) > 0 {
			d.Schedule[sl.Time] = sl.Tasks
		}
	}
	return d
}
