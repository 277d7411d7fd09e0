package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

func init() {
	color.NoColor = true
}

func TestNotesAndSchedule(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	work := tag.MustNew("1", "Work", "#ff0000")
	mins := 90

	pp.Notes("Notes", &task.Task{ID: "a", Content: "Buy milk", Tags: tag.Set{work}, Duration: &mins})
	pp.Schedule("Schedule",
		schedule.Slot{Time: "09:00", Tasks: []*task.Task{{ID: "b", Content: "Standup", Completed: true}}},
		schedule.Slot{Time: "09:30"},
	)

	out := buf.String()
	for _, want := range []string{"Notes - 1 task", "• Buy milk #Work (1h30m)", "09:00", "✔ Standup"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "09:30") {
		t.Fatalf("empty slot printed without AllSlots:\n%s", out)
	}
}

func TestScheduleShowsIDs(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true, AllSlots: true}
	pp.Schedule("Schedule",
		schedule.Slot{Time: "09:00", Tasks: []*task.Task{{ID: "task-b", Content: "Standup"}}},
		schedule.Slot{Time: "09:30"},
	)
	out := buf.String()
	if !strings.Contains(out, "task-b") || !strings.Contains(out, "09:30") {
		t.Fatalf("output = %s", out)
	}
}

func TestEmptyNotes(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Notes("Notes")
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	rows := []analytics.Row{
		{Tag: tag.MustNew("1", "Work", "#f00"), Tasks: 1200, Completed: 3, Minutes: 75},
		{Tag: tag.Tag{Name: analytics.Untagged}},
	}
	pp.Stats(rows, analytics.Row{Tasks: 1200, Completed: 3, Minutes: 75})
	out := buf.String()
	for _, want := range []string{"#Work", "1,200", "1h15m", "untagged", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSaved(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Saved(time.Time{}, false)
	pp.Saved(time.Now().Add(-3*time.Minute), false)
	pp.Saved(time.Now(), true)
	out := buf.String()
	for _, want := range []string{"never saved", "saved 3 minutes ago", "unsaved changes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdown(t *testing.T) {
	d := session.Empty("2024-03-01")
	d.Priorities[0] = "Ship"
	d.Notes = []*task.Task{{ID: "a", Content: "Buy milk", Tags: tag.Set{tag.MustNew("2", "Personal", "#0f0")}}}
	d.Schedule["09:00"] = []*task.Task{{ID: "b", Content: "Standup", Completed: true}}

	md := Markdown("Timebox", d)
	for _, want := range []string{"# Timebox · 2024-03-01", "1. Ship", "2. _none_", "- [ ] Buy milk `#Personal`", "### 09:00", "- [x] Standup"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if _, err := RenderMarkdown(md, 60); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
}

func TestMonths(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	since := time.Date(2024, 1, 20, 0, 0, 0, 0, time.Local)
	until := time.Date(2024, 2, 5, 0, 0, 0, 0, time.Local)
	pp.Months(since, until, map[string]int{"2024-01-21": 2})
	out := buf.String()
	if !strings.Contains(out, "January 2024") || !strings.Contains(out, "February 2024") {
		t.Fatalf("output = %s", out)
	}
	if DaysIn(time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)) != 29 {
		t.Fatal("2024 is a leap year")
	}
}
