// Package mcp provides the Model Context Protocol server integration for
// timebox.
package mcp

import (
	"context"
	"errors"
	"sync"
	"time"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

// ErrUnsaved is returned when switching dates would drop unsaved changes.
var ErrUnsaved = errors.New("open day has unsaved changes, save first")

// Service serializes tool calls onto one app.Service. Every mutation is
// saved before the call returns.
type Service struct {
	mu  sync.Mutex
	app *app.Service
}

// TaskDTO is a task plus where it sits in the day.
type TaskDTO struct {
	*task.Task
	Slot string `json:"slot,omitempty"`
}

// SlotDTO is one occupied half-hour slot.
type SlotDTO struct {
	Time  string     `json:"time"`
	Tasks []*TaskDTO `json:"tasks"`
}

// DayDTO is a transport-friendly projection of the open day.
type DayDTO struct {
	Date       string     `json:"date"`
	Dirty      bool       `json:"dirty"`
	SavedAt    string     `json:"savedAt,omitempty"`
	Filter     []string   `json:"filter,omitempty"`
	Priorities []string   `json:"priorities"`
	Notes      []*TaskDTO `json:"notes"`
	Schedule   []SlotDTO  `json:"schedule"`
}

// StatsDTO holds the per-tag totals of the open day.
type StatsDTO struct {
	Date  string          `json:"date"`
	ByTag []analytics.Row `json:"byTag"`
	Total analytics.Row   `json:"total"`
}

// NewService wraps an app service that already has a day open.
func NewService(a *app.Service) *Service {
	return &Service{app: a}
}

// AddNote creates a note with optional tags and duration.
func (s *Service) AddNote(ctx context.Context, content string, tags []string, minutes int) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.app.Selection(tags...); err != nil {
		return nil, err
	}
	t, err := s.app.AddNote(content)
	if err != nil {
		return nil, err
	}
	for _, ref := range tags {
		if t, err = s.app.ToggleTag(t.ID, ref); err != nil {
			return nil, err
		}
	}
	if minutes > 0 {
		if t, err = s.app.SetDuration(t.ID, minutes); err != nil {
			return nil, err
		}
	}
	return s.saved(ctx, t.ID)
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteNote(id); err != nil {
		return nil, err
	}
	if err := s.app.Save(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Schedule drops a task onto the slot at time.
func (s *Service) Schedule(ctx context.Context, id, at string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.app.Schedule(id, at); err != nil {
		return nil, err
	}
	return s.saved(ctx, id)
}

// Move moves a scheduled task between slots.
func (s *Service) Move(ctx context.Context, id, from, to string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.app.Move(id, from, to); err != nil {
		return nil, err
	}
	return s.saved(ctx, id)
}

// Unschedule returns a task to the notes.
func (s *Service) Unschedule(ctx context.Context, id string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.app.Unschedule(id); err != nil {
		return nil, err
	}
	return s.saved(ctx, id)
}

// Complete marks a task completed.
func (s *Service) Complete(ctx context.Context, id string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.app.Complete(id); err != nil {
		return nil, err
	}
	return s.saved(ctx, id)
}

// ToggleTag flips one tag on a task.
func (s *Service) ToggleTag(ctx context.Context, id, ref string) (*TaskDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.app.ToggleTag(id, ref); err != nil {
		return nil, err
	}
	return s.saved(ctx, id)
}

// SetPriority sets priority n, counted from 1.
func (s *Service) SetPriority(ctx context.Context, n int, text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.app.SetPriority(n, text); err != nil {
		return nil, err
	}
	if err := s.app.Save(ctx); err != nil {
		return nil, err
	}
	return s.app.Day().Priorities(), nil
}

// Day returns the open day, filtered by tag references when given.
func (s *Service) Day(tags ...string) (*DayDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.day(tags...)
}

// Peek returns the stored session for date without opening it. The open day
// is returned as it is in memory.
func (s *Service) Peek(ctx context.Context, date string) (*session.DaySession, error) {
	if _, err := session.ParseDateKey(date); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if date == s.app.Date() {
		return s.app.Snapshot(), nil
	}
	d, err := s.app.Persistence.Load(ctx, date)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = session.Empty(date)
	}
	return d, nil
}

// Stats totals the open day per tag.
func (s *Service) Stats() StatsDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsDTO{
		Date:  s.app.Date(),
		ByTag: s.app.Stats(),
		Total: analytics.Total(s.app.Day().Tasks()),
	}
}

// OpenDate switches the open day.
func (s *Service) OpenDate(ctx context.Context, date string) (*DayDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	moved, err := s.app.ChangeDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrUnsaved
	}
	return s.day()
}

// Save writes the open day.
func (s *Service) Save(ctx context.Context) (*DayDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.app.Save(ctx); err != nil {
		return nil, err
	}
	return s.day()
}

// Report lists completed work between since and until.
func (s *Service) Report(ctx context.Context, since, until time.Time) (app.ReportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.Report(ctx, since, until)
}

// Carryover copies unfinished tasks of from into the open day.
func (s *Service) Carryover(ctx context.Context, from string, ids ...string) ([]*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied, err := s.app.Carryover(ctx, from, ids...)
	if err != nil {
		return nil, err
	}
	if len(copied) > 0 {
		if err := s.app.Save(ctx); err != nil {
			return nil, err
		}
	}
	return copied, nil
}

// Tags returns the catalog.
func (s *Service) Tags() []tag.Tag {
	return s.app.Tags.All()
}

func (s *Service) saved(ctx context.Context, id string) (*TaskDTO, error) {
	if err := s.app.Save(ctx); err != nil {
		return nil, err
	}
	return s.find(id)
}

func (s *Service) find(id string) (*TaskDTO, error) {
	t, loc, err := s.app.Find(id)
	if err != nil {
		return nil, err
	}
	return &TaskDTO{Task: t, Slot: loc.Slot}, nil
}

func (s *Service) day(tags ...string) (*DayDTO, error) {
	sel, err := s.app.Selection(tags...)
	if err != nil {
		return nil, err
	}
	view := s.app.View(sel)
	d := &DayDTO{
		Date:       s.app.Date(),
		Dirty:      s.app.Dirty(),
		Filter:     sel.Tags().IDs(),
		Priorities: s.app.Day().Priorities(),
		Notes:      make([]*TaskDTO, 0, len(view.Notes)),
		Schedule:   []SlotDTO{},
	}
	if at := s.app.SavedAt(); !at.IsZero() {
		d.SavedAt = at.Format(time.RFC3339)
	}
	for _, t := range view.Notes {
		d.Notes = append(d.Notes, &TaskDTO{Task: t})
	}
	for _, sl := range view.Slots {
		if len(sl.Tasks) == 0 {
			continue
		}
		out := SlotDTO{Time: sl.Time}
		for _, t := range sl.Tasks {
			out.Tasks = append(out.Tasks, &TaskDTO{Task: t, Slot: sl.Time})
		}
		d.Schedule = append(d.Schedule, out)
	}
	return d, nil
}
