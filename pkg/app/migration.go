package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/task"
)

// ErrSameDay is returned when carrying tasks over from the open day itself.
var ErrSameDay = errors.New("app: cannot carry over from the open day")

// CarryoverCandidate is an unfinished task from an earlier day.
type CarryoverCandidate struct {
	Task *task.Task `json:"task"`
	Slot string     `json:"slot,omitempty"`
}

// CarryoverCandidates lists the unfinished tasks of from, notes first then
// slots in day order.
func (s *Service) CarryoverCandidates(ctx context.Context, from string) ([]CarryoverCandidate, error) {
	if _, err := session.ParseDateKey(from); err != nil {
		return nil, err
	}
	if from == s.Date() {
		return nil, ErrSameDay
	}
	day, err := s.dayFor(ctx, from)
	if err != nil {
		return nil, err
	}
	var out []CarryoverCandidate
	for _, it := range day.items() {
		if it.Task == nil || it.Task.Completed {
			continue
		}
		out = append(out, CarryoverCandidate{Task: it.Task, Slot: it.Slot})
	}
	return out, nil
}

// Carryover copies unfinished tasks of from into the open day's notes. An
// empty ids list carries every candidate. The copies get new ids; tags and
// durations are kept. The source day is not modified.
func (s *Service) Carryover(ctx context.Context, from string, ids ...string) ([]*task.Task, error) {
	candidates, err := s.CarryoverCandidates(ctx, from)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for id := range wanted {
		if !hasCandidate(candidates, id) {
			return nil, fmt.Errorf("%w: %s on %s", ErrNotFound, id, from)
		}
	}

	var added []*task.Task
	for _, c := range candidates {
		if len(wanted) > 0 && !wanted[c.Task.ID] {
			continue
		}
		t, err := s.AddNote(c.Task.Content)
		if err != nil {
			continue
		}
		s.Day().UpdateTask(t.ID, task.Update{Tags: &c.Task.Tags, Duration: c.Task.Duration})
		t, _, _ = s.Day().Find(t.ID)
		added = append(added, t)
	}
	return added, nil
}

func hasCandidate(cs []CarryoverCandidate, id string) bool {
	for _, c := range cs {
		if c.Task.ID == id {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func sortedDates(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
