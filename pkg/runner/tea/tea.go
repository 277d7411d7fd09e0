package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/i18n"
)

// Runner launches the Bubble Tea UI.
type Runner struct {
	Service *app.Service
	// Clock must be the clock the service's timer was built with.
	Clock *Clock
	Lang  i18n.Strings
	Log   *zap.Logger
}

// Do runs the program until the user quits.
func (r *Runner) Do(ctx context.Context) error {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	opts := []Option{WithLanguage(r.Lang)}
	events, err := r.Service.Watch(ctx)
	if err != nil {
		log.Warn("not watching for changes on disk", zap.Error(err))
	} else {
		opts = append(opts, WithEvents(events))
	}
	m := New(ctx, r.Service, r.Clock, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
