// Package session loads, saves and switches the planner's day sessions.
package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/timebox/pkg/dirty"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/task"
)

const layoutISO = "2006-01-02"

var (
	// ErrMalformedSession marks persisted data that cannot be decoded into a day.
	ErrMalformedSession = errors.New("session: malformed day session")
	// ErrInvalidDate is returned for date keys that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("session: invalid date key")
)

// DateKey formats t as the YYYY-MM-DD persistence key.
func DateKey(t time.Time) string {
	return t.Format(layoutISO)
}

// ParseDateKey validates a YYYY-MM-DD key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(layoutISO, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return t, nil
}

// Today returns today's key in local time.
func Today() string {
	return DateKey(time.Now())
}

// DaySession is the persisted unit, one per calendar date.
type DaySession struct {
	Date       string                  `json:"date"`
	Priorities []string                `json:"priorities"`
	Notes      []*task.Task            `json:"notes"`
	Schedule   map[string][]*task.Task `json:"schedule"`
	SavedAt    task.Timestamp          `json:"savedAt"`
}

// Empty returns the defaults for a date with nothing saved.
func Empty(date string) *DaySession {
	return &DaySession{
		Date:       date,
		Priorities: make([]string, schedule.PriorityCount),
		Notes:      []*task.Task{},
		Schedule:   map[string][]*task.Task{},
	}
}

// FromStore captures the state of a day.
func FromStore(date string, s *schedule.Store) *DaySession {
	snap := s.Snapshot()
	return &DaySession{
		Date:       date,
		Priorities: snap.Priorities,
		Notes:      snap.Notes,
		Schedule:   snap.Schedule,
	}
}

// Restore rebuilds the day aggregate, bound to tracker.
func (d *DaySession) Restore(tracker *dirty.Tracker) (*schedule.Store, error) {
	s, err := schedule.Restore(schedule.Snapshot{
		Priorities: d.Priorities,
		Notes:      d.Notes,
		Schedule:   d.Schedule,
	}, tracker)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return s, nil
}

// Marshal encodes a session as JSON.
func Marshal(d *DaySession) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal decodes a session. Besides the current form it accepts the text
// planner form where notes is a single string and each schedule entry is a
// string; every non-empty line or entry becomes one task.
func Unmarshal(data []byte) (*DaySession, error) {
	var raw struct {
		Date       string                     `json:"date"`
		Priorities []string                   `json:"priorities"`
		Notes      json.RawMessage            `json:"notes"`
		Schedule   map[string]json.RawMessage `json:"schedule"`
		SavedAt    task.Timestamp             `json:"savedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}

	d := &DaySession{
		Date:       raw.Date,
		Priorities: raw.Priorities,
		Schedule:   make(map[string][]*task.Task, len(raw.Schedule)),
		SavedAt:    raw.SavedAt,
	}
	if d.Priorities == nil {
		d.Priorities = make([]string, schedule.PriorityCount)
	}

	notes, err := decodeTasks(raw.Notes, raw.Date+"/notes", true)
	if err != nil {
		return nil, fmt.Errorf("%w: notes: %v", ErrMalformedSession, err)
	}
	d.Notes = notes

	for time, msg := range raw.Schedule {
		tasks, err := decodeTasks(msg, raw.Date+"/"+time, false)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %s: %v", ErrMalformedSession, time, err)
		}
		if len(tasks) > 0 {
			d.Schedule[time] = tasks
		}
	}
	return d, nil
}

// decodeTasks reads either a task list or a text value. Text is split into
// one task per line when splitLines is set, otherwise kept as one task. Null
// entries are dropped. Tasks without an id get one derived from seed, their
// position and content, so repeated reads of the same data agree.
func decodeTasks(msg json.RawMessage, seed string, splitLines bool) ([]*task.Task, error) {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 || bytes.Equal(msg, []byte("null")) {
		return []*task.Task{}, nil
	}
	if msg[0] != '"' {
		var raw []*task.Task
		if err := json.Unmarshal(msg, &raw); err != nil {
			return nil, err
		}
		tasks := make([]*task.Task, 0, len(raw))
		for i, t := range raw {
			if t == nil {
				continue
			}
			if t.ID == "" {
				t.ID = task.DerivedID(seed, strconv.Itoa(i), t.Content)
			}
			tasks = append(tasks, t)
		}
		return tasks, nil
	}

	var text string
	if err := json.Unmarshal(msg, &text); err != nil {
		return nil, err
	}
	lines := []string{text}
	if splitLines {
		lines = strings.Split(text, "\n")
	}
	tasks := make([]*task.Task, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t := task.New(line)
		t.ID = task.DerivedID(seed, strconv.Itoa(i), t.Content)
		tasks = append(tasks, t)
	}
	return tasks, nil
}
