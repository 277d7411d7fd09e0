package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/task"
)

// ReportItem captures a completed task and where it sat in its day.
type ReportItem struct {
	Task *task.Task `json:"task"`
	Slot string     `json:"slot,omitempty"`
}

// ReportSection groups completed tasks by day.
type ReportSection struct {
	Date  string        `json:"date"`
	Total analytics.Row `json:"total"`
	Done  []ReportItem  `json:"done"`
}

// ReportResult encapsulates a completed-tasks report for a window of days.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	ByTag    []analytics.Row `json:"byTag"`
	Total    analytics.Row   `json:"total"`
}

// Report totals every saved day between the bounds, inclusive. The open day
// contributes its in-memory state, saved or not.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	from, to := session.DateKey(since), session.DateKey(until)

	dates, err := s.Persistence.Dates(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	if open := s.Date(); open >= from && open <= to && !contains(dates, open) {
		dates = append(dates, open)
	}

	result := ReportResult{Since: since, Until: until}
	var all []*task.Task
	for _, date := range sortedDates(dates) {
		if date < from || date > to {
			continue
		}
		if err := ctx.Err(); err != nil {
			return ReportResult{}, err
		}
		day, err := s.dayFor(ctx, date)
		if err != nil {
			s.log.Warn("report skipping day", zap.String("date", date), zap.Error(err))
			continue
		}
		tasks := day.tasks()
		all = append(all, tasks...)

		section := ReportSection{Date: date, Total: analytics.Total(tasks)}
		for _, it := range day.items() {
			if it.Task != nil && it.Task.Completed {
				section.Done = append(section.Done, it)
			}
		}
		result.Sections = append(result.Sections, section)
	}
	result.ByTag = analytics.ByTag(all, s.Tags.All())
	result.Total = analytics.Total(all)
	return result, nil
}

type dayTasks struct {
	notes    []*task.Task
	schedule map[string][]*task.Task
}

func (d dayTasks) items() []ReportItem {
	out := make([]ReportItem, 0, len(d.notes))
	for _, t := range d.notes {
		out = append(out, ReportItem{Task: t})
	}
	for _, slot := range sortedDates(keys(d.schedule)) {
		for _, t := range d.schedule[slot] {
			out = append(out, ReportItem{Task: t, Slot: slot})
		}
	}
	return out
}

func (d dayTasks) tasks() []*task.Task {
	items := d.items()
	out := make([]*task.Task, len(items))
	for i, it := range items {
		out[i] = it.Task
	}
	return out
}

// dayFor reads a day without disturbing the open one. Stored days go
// through the same checks as an opened day, so slot keys come out canonical.
func (s *Service) dayFor(ctx context.Context, date string) (dayTasks, error) {
	if date == s.Date() {
		snap := s.Day().Snapshot()
		return dayTasks{notes: snap.Notes, schedule: snap.Schedule}, nil
	}
	d, err := s.Persistence.Load(ctx, date)
	if err != nil {
		return dayTasks{}, err
	}
	if d == nil {
		return dayTasks{schedule: map[string][]*task.Task{}}, nil
	}
	day, err := d.Restore(nil)
	if err != nil {
		return dayTasks{}, err
	}
	snap := day.Snapshot()
	return dayTasks{notes: snap.Notes, schedule: snap.Schedule}, nil
}
