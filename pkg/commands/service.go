package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/commands/options"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/logging"
	"tableflip.dev/timebox/pkg/prompt"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/store"
	"tableflip.dev/timebox/pkg/timer"
)

// planner is everything a command needs once the day is open.
type planner struct {
	svc  *app.Service
	lang i18n.Strings
	log  *zap.Logger

	persistence store.Persistence
}

func (p *planner) Close() {
	_ = p.persistence.Close()
	_ = p.log.Sync()
}

type openOptions struct {
	clock timer.Clock
	// lenient keeps going with an empty day when the stored one can not be
	// read. Interactive surfaces want that; one-shot writers must not save
	// an empty day over a file they failed to read.
	lenient bool
}

// openPlanner reads config, opens the store and loads the day selected by
// day.
func openPlanner(ctx context.Context, day *options.DayOptions, oo openOptions) (*planner, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Config{
		Level:        cfg.LogLevel(),
		Encoding:     cfg.LogEncoding(),
		ColorEnabled: isatty.IsTerminal(os.Stderr.Fd()),
	})
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, log)
	if err != nil {
		return nil, err
	}

	opts := []app.Option{app.WithLogger(log)}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		opts = append(opts, app.WithConfirmer(&prompt.Prompter{}))
	}
	svc, err := app.New(p, oo.clock, opts...)
	if err != nil {
		_ = p.Close()
		return nil, err
	}

	pl := &planner{svc: svc, lang: i18n.Lookup(cfg.Language()), log: log, persistence: p}

	key, err := day.Key(time.Now())
	if err != nil {
		pl.Close()
		return nil, err
	}
	if err := svc.Open(ctx, key); err != nil {
		var perr *session.PersistenceError
		if !oo.lenient || !errors.As(err, &perr) {
			pl.Close()
			return nil, err
		}
		_, _ = fmt.Fprintln(color.Error, color.YellowString("warning: %v, starting with an empty day", err))
	}
	return pl, nil
}

// withPlanner opens the day, hands it to run and closes it again. Errors go
// through the output options so --json callers get a JSON error.
func withPlanner(cmd *cobra.Command, day *options.DayOptions, oo openOptions, run func(*planner) error) error {
	cmd.SilenceUsage = true
	pl, err := openPlanner(cmd.Context(), day, oo)
	if err != nil {
		return output.HandleError(err)
	}
	defer pl.Close()
	return output.HandleError(run(pl))
}
