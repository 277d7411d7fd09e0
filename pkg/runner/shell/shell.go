// Package shell provides an interactive line-oriented session over one day.
// Unlike the one-shot commands it does not save after each change; "save"
// writes the day and leaving or switching dates with unsaved changes asks
// first.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/printers"
	"tableflip.dev/timebox/pkg/runner/show"
	"tableflip.dev/timebox/pkg/session"
)

// LineReader reads one command line.
type LineReader interface {
	Line(label string) (string, error)
}

// Shell reads commands until "quit" or end of input.
type Shell struct {
	Service   *app.Service
	Lang      i18n.Strings
	Input     LineReader
	Confirmer session.Confirmer
	Out       io.Writer

	filter []string
}

var (
	errQuit    = errors.New("quit")
	errUnsaved = errors.New("unsaved changes, save first or quit! to discard them")
)

const help = `commands:
  add <text>              add a note
  rm <id>                 delete a note
  tag <id> <tag>          toggle a tag
  drop <id> <HH:MM>       schedule a task
  move <id> <from> <to>   move a scheduled task
  unschedule <id>         back to the notes
  done <id>               complete a task
  prio <1-3> <text>       set a priority
  filter [tag...]         show only these tags
  show | stats | save
  date <YYYY-MM-DD>       open another day
  quit | quit!            leave, quit! discards unsaved changes`

// Do runs the loop.
func (s *Shell) Do(ctx context.Context) error {
	if s.Service == nil || s.Input == nil {
		return errors.New("can not start shell, no service")
	}
	if s.Lang.Code == "" {
		s.Lang = i18n.Lookup("en")
	}
	s.print()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := s.Input.Line(s.label())
		eof := errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF)
		switch {
		case eof, errors.Is(err, promptui.ErrInterrupt):
			line = "quit"
		case err != nil:
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "filter" {
			if _, err := s.Service.Selection(fields[1:]...); err != nil {
				s.fail(err)
				continue
			}
			s.filter = fields[1:]
			s.print()
			continue
		}
		err = s.exec(ctx, fields[0], fields[1:])
		switch {
		case errors.Is(err, errQuit):
			return nil
		case eof:
			// Nothing more can be read after end of input.
			if err != nil {
				s.fail(err)
			}
			return nil
		case err != nil:
			s.fail(err)
		}
	}
}

func (s *Shell) exec(ctx context.Context, cmd string, args []string) error {
	svc := s.Service
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s needs %d argument(s), see help", cmd, n)
		}
		return nil
	}
	switch cmd {
	case "help", "?":
		_, _ = fmt.Fprintln(s.out(), help)
	case "add":
		if _, err := svc.AddNote(strings.Join(args, " ")); err != nil {
			return err
		}
	case "rm":
		if err := need(1); err != nil {
			return err
		}
		return svc.DeleteNote(args[0])
	case "tag":
		if err := need(2); err != nil {
			return err
		}
		_, err := svc.ToggleTag(args[0], args[1])
		return err
	case "drop":
		if err := need(2); err != nil {
			return err
		}
		_, err := svc.Schedule(args[0], args[1])
		return err
	case "move":
		if err := need(3); err != nil {
			return err
		}
		return svc.Move(args[0], args[1], args[2])
	case "unschedule":
		if err := need(1); err != nil {
			return err
		}
		return svc.Unschedule(args[0])
	case "done":
		if err := need(1); err != nil {
			return err
		}
		_, err := svc.Complete(args[0])
		return err
	case "prio":
		if err := need(1); err != nil {
			return err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("priority number: %w", err)
		}
		return svc.SetPriority(n, strings.Join(args[1:], " "))
	case "show":
		s.print()
	case "stats":
		pp := printers.PrettyPrint{Out: s.Out}
		pp.Stats(svc.Stats(), analytics.Total(svc.Day().Tasks()))
	case "save":
		if err := svc.Save(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(s.out(), s.Lang.Saved)
	case "date":
		if err := need(1); err != nil {
			return err
		}
		moved, err := svc.ChangeDate(ctx, args[0])
		if err != nil {
			var perr *session.PersistenceError
			if !errors.As(err, &perr) {
				return err
			}
			s.fail(err)
		}
		if !moved {
			s.notice("kept %s, it has unsaved changes", svc.Date())
			return nil
		}
		s.print()
	case "quit", "exit", "q":
		if !svc.Dirty() {
			return errQuit
		}
		if s.Confirmer == nil {
			return errUnsaved
		}
		ok, err := s.Confirmer.Confirm(ctx, session.DiscardPrompt)
		if err != nil {
			return err
		}
		if ok {
			return errQuit
		}
		s.notice("kept %s, nothing was discarded", svc.Date())
	case "quit!":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (s *Shell) label() string {
	mark := ""
	if s.Service.Dirty() {
		mark = "*"
	}
	return fmt.Sprintf("%s%s>", s.Service.Date(), mark)
}

func (s *Shell) print() {
	sel, err := s.Service.Selection(s.filter...)
	if err != nil {
		s.fail(err)
		return
	}
	pp := printers.PrettyPrint{ShowID: true, Out: s.Out}
	show.Print(&pp, s.Lang, s.Service, s.Service.View(sel))
}

func (s *Shell) notice(format string, a ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(s.out(), format+"\n", a...)
}

func (s *Shell) fail(err error) {
	_, _ = color.New(color.FgRed).Fprintln(s.out(), "error:", err)
}

func (s *Shell) out() io.Writer {
	if s.Out == nil {
		return color.Output
	}
	return s.Out
}
