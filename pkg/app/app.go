// Package app binds one open day and one focus timer into the operations the
// CLI, TUI and MCP server share.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/filter"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/store"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timer"
)

var (
	// ErrNotFound is returned when no task of the open day has the id.
	ErrNotFound = errors.New("app: task not found")
	// ErrEmptyContent is returned for blank note text.
	ErrEmptyContent = errors.New("app: note content required")
	// ErrScheduled is returned when a note operation targets a scheduled task.
	ErrScheduled = errors.New("app: task is scheduled")
	// ErrNotScheduled is returned when a slot operation targets a note.
	ErrNotScheduled = errors.New("app: task is not scheduled")
)

// Option configures a Service.
type Option func(*options)

type options struct {
	tags    *tag.Registry
	log     *zap.Logger
	confirm session.Confirmer
}

// WithTags replaces the default tag catalog.
func WithTags(r *tag.Registry) Option {
	return func(o *options) { o.tags = r }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithConfirmer sets who is asked before unsaved changes are discarded.
func WithConfirmer(c session.Confirmer) Option {
	return func(o *options) { o.confirm = c }
}

// Service provides high-level operations on the open day. It wraps the session
// loader and the focus timer so UIs and CLIs can share logic. It is not safe
// for concurrent use.
type Service struct {
	Persistence store.Persistence
	Tags        *tag.Registry

	log    *zap.Logger
	loader *session.Loader
	timer  *timer.Timer
}

// New builds a service. clock drives the focus timer and may be nil for
// surfaces that never start it. Call Open before anything else.
func New(p store.Persistence, clock timer.Clock, opts ...Option) (*Service, error) {
	if p == nil {
		return nil, errors.New("app: no persistence configured")
	}
	o := options{tags: tag.Default(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	loader, err := session.NewLoader(p,
		session.WithLogger(o.log.Named("session")),
		session.WithConfirmer(o.confirm),
	)
	if err != nil {
		return nil, err
	}
	s := &Service{
		Persistence: p,
		Tags:        o.tags,
		log:         o.log,
		loader:      loader,
	}
	s.timer = timer.New(clock, s)
	return s, nil
}

// Open loads date, discarding anything unsaved.
func (s *Service) Open(ctx context.Context, date string) error {
	return s.loader.Open(ctx, date)
}

// ChangeDate moves to date, asking before unsaved changes are dropped.
func (s *Service) ChangeDate(ctx context.Context, date string) (bool, error) {
	return s.loader.ChangeDate(ctx, date)
}

// Save writes the open day.
func (s *Service) Save(ctx context.Context) error {
	return s.loader.Save(ctx)
}

// Refresh reloads the open day after it changed on disk. A day with unsaved
// changes is left alone and reported with false.
func (s *Service) Refresh(ctx context.Context) (bool, error) {
	if s.loader.Dirty() {
		return false, nil
	}
	s.loader.Invalidate(s.loader.Date())
	if err := s.loader.Open(ctx, s.loader.Date()); err != nil {
		return false, err
	}
	return true, nil
}

// Forget drops a cached day so the next open reads it from disk.
func (s *Service) Forget(date string) {
	s.loader.Invalidate(date)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	return s.Persistence.Watch(ctx)
}

// Date is the open day's key.
func (s *Service) Date() string { return s.loader.Date() }

// Dirty reports unsaved changes.
func (s *Service) Dirty() bool { return s.loader.Dirty() }

// SavedAt is the last save of the open day.
func (s *Service) SavedAt() time.Time { return s.loader.SavedAt() }

// Day returns the open day.
func (s *Service) Day() *schedule.Store { return s.loader.Current() }

// Snapshot captures the open day for output.
func (s *Service) Snapshot() *session.DaySession {
	d := session.FromStore(s.loader.Date(), s.loader.Current())
	d.SavedAt = task.Timestamp{Time: s.loader.SavedAt()}
	return d
}

// Timer is the focus timer.
func (s *Service) Timer() *timer.Timer { return s.timer }

// Find returns the task with id from the open day.
func (s *Service) Find(id string) (*task.Task, schedule.Location, error) {
	t, loc, ok := s.Day().Find(strings.TrimSpace(id))
	if !ok {
		return nil, schedule.Location{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, loc, nil
}

// AddNote creates an unscheduled task.
func (s *Service) AddNote(content string) (*task.Task, error) {
	t, ok := s.Day().AddNote(content)
	if !ok {
		return nil, ErrEmptyContent
	}
	return t, nil
}

// DeleteNote removes an unscheduled task.
func (s *Service) DeleteNote(id string) error {
	_, loc, err := s.Find(id)
	if err != nil {
		return err
	}
	if loc.Scheduled() {
		return fmt.Errorf("%w at %s", ErrScheduled, loc.Slot)
	}
	s.Day().DeleteNote(id)
	return nil
}

// Schedule puts a task into the slot at time. Notes are dropped onto the
// slot; scheduled tasks move there.
func (s *Service) Schedule(id, at string) (*task.Task, error) {
	at, err := schedule.NormalizeTime(at)
	if err != nil {
		return nil, err
	}
	t, loc, err := s.Find(id)
	if err != nil {
		return nil, err
	}
	if loc.Scheduled() {
		err = s.Day().Drop(schedule.SlotDrag{Task: t, Source: loc.Slot}, at)
	} else {
		err = s.Day().Drop(schedule.NoteDrag{Task: t}, at)
	}
	if err != nil {
		return nil, err
	}
	t, _, _ = s.Day().Find(t.ID)
	return t, nil
}

// Move moves a scheduled task between slots.
func (s *Service) Move(id, from, to string) error {
	from, err := schedule.NormalizeTime(from)
	if err != nil {
		return err
	}
	to, err = schedule.NormalizeTime(to)
	if err != nil {
		return err
	}
	_, loc, err := s.Find(id)
	if err != nil {
		return err
	}
	if loc.Slot != from {
		return fmt.Errorf("%w in %s", ErrNotScheduled, from)
	}
	return s.Day().MoveTask(id, from, to)
}

// Unschedule returns a scheduled task to the notes.
func (s *Service) Unschedule(id string) error {
	_, loc, err := s.Find(id)
	if err != nil {
		return err
	}
	if !loc.Scheduled() {
		return ErrNotScheduled
	}
	s.Day().UnscheduleTask(id)
	return nil
}

// Complete marks a task completed.
func (s *Service) Complete(id string) (*task.Task, error) {
	return s.update(id, task.CompletedUpdate())
}

// Edit replaces a task's text.
func (s *Service) Edit(id, content string) (*task.Task, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	return s.update(id, task.Update{Content: &content})
}

// SetDuration records how many minutes a task takes.
func (s *Service) SetDuration(id string, minutes int) (*task.Task, error) {
	if minutes < 0 {
		return nil, fmt.Errorf("app: negative duration %d", minutes)
	}
	return s.update(id, task.Update{Duration: &minutes})
}

// ToggleTag adds or removes the tag named by ref (id or name).
func (s *Service) ToggleTag(id, ref string) (*task.Task, error) {
	tg, err := s.Tags.Resolve(ref)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.Find(id); err != nil {
		return nil, err
	}
	s.Day().ToggleTag(id, tg)
	t, _, _ := s.Day().Find(id)
	return t, nil
}

// SetPriority sets priority n, counted from 1.
func (s *Service) SetPriority(n int, text string) error {
	return s.Day().SetPriority(n-1, strings.TrimSpace(text))
}

// Selection resolves tag references into a filter selection.
func (s *Service) Selection(refs ...string) (filter.Selection, error) {
	tags := make([]tag.Tag, 0, len(refs))
	for _, ref := range refs {
		tg, err := s.Tags.Resolve(ref)
		if err != nil {
			return filter.Selection{}, err
		}
		tags = append(tags, tg)
	}
	return filter.NewSelection(tags...), nil
}

// View is the open day filtered by sel.
func (s *Service) View(sel filter.Selection) filter.View {
	return filter.Day(s.Day(), sel)
}

// Stats totals the open day per tag.
func (s *Service) Stats() []analytics.Row {
	return analytics.ByTag(s.Day().Tasks(), s.Tags.All())
}

// Focus selects the task and starts the timer on it.
func (s *Service) Focus(id string) error {
	if err := s.Select(id); err != nil {
		return err
	}
	return s.timer.Start()
}

// Select points the timer at a task of the open day.
func (s *Service) Select(id string) error {
	t, _, err := s.Find(id)
	if err != nil {
		return err
	}
	s.timer.Select(t)
	return nil
}

// CompleteTask is the timer's completion target. Tasks that are no longer
// in the open day, e.g. after a date change, are skipped.
func (s *Service) CompleteTask(id string) {
	if _, _, ok := s.Day().Find(id); !ok {
		s.log.Info("focus task left the open day, not completing", zap.String("id", id))
		return
	}
	s.Day().CompleteTask(id)
}

func (s *Service) update(id string, u task.Update) (*task.Task, error) {
	if _, _, err := s.Find(id); err != nil {
		return nil, err
	}
	s.Day().UpdateTask(id, u)
	t, _, _ := s.Day().Find(id)
	return t, nil
}
