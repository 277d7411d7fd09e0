package report

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/runner/tea/internal/theme"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

func sample() app.ReportResult {
	done := task.New("ship it")
	done.Completed = true
	work := tag.Default().All()[0]
	return app.ReportResult{
		Since: time.Date(2024, 3, 8, 0, 0, 0, 0, time.Local),
		Until: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
		Sections: []app.ReportSection{
			{Date: "2024-03-14", Total: analytics.Row{Tasks: 2, Completed: 1}, Done: []app.ReportItem{{Task: done, Slot: "09:30"}}},
			{Date: "2024-03-15", Total: analytics.Row{Tasks: 1}},
		},
		ByTag: []analytics.Row{
			{Tag: work, Tasks: 2, Completed: 1, Minutes: 90},
			{Tag: tag.Tag{Name: analytics.Untagged}, Tasks: 1},
			{Tag: tag.Default().All()[1]},
		},
		Total: analytics.Row{Tasks: 3, Completed: 1, Minutes: 90},
	}
}

func TestReportLines(t *testing.T) {
	m := New(theme.Default())
	m.SetData("1w", sample())
	m.SetViewport(80, 40)
	if !m.Active() {
		t.Fatalf("expected active report")
	}
	text := strings.Join(m.lines, "\n")
	for _, want := range []string{"Report · last 1w", "1 of 3 tasks completed", "2024-03-14  1/2", "09:30  ship it", "Work", "untagged"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "2024-03-15  0/1") {
		t.Fatalf("days without completed tasks should be skipped:\n%s", text)
	}
	if strings.Contains(text, "Personal") {
		t.Fatalf("empty tag rows should be skipped:\n%s", text)
	}
}

func TestReportEmpty(t *testing.T) {
	m := New(theme.Default())
	m.SetData("3d", app.ReportResult{})
	if !strings.Contains(strings.Join(m.lines, "\n"), "No completed tasks") {
		t.Fatalf("lines = %v", m.lines)
	}
}

func TestReportScrollBounds(t *testing.T) {
	m := New(theme.Default())
	m.SetData("1w", sample())
	m.SetViewport(80, 3)
	m.ScrollEnd()
	if want := len(m.lines) - 3; m.offset != want {
		t.Fatalf("offset after ScrollEnd = %d, want %d", m.offset, want)
	}
	m.ScrollPages(5)
	if want := len(m.lines) - 3; m.offset != want {
		t.Fatalf("offset clamped = %d, want %d", m.offset, want)
	}
	m.ScrollLines(-100)
	if m.offset != 0 {
		t.Fatalf("offset = %d, want 0", m.offset)
	}
	if got := strings.Count(m.View(), "\n"); got != 4 {
		t.Fatalf("view has %d newlines, want 3 lines plus frame", got)
	}
	m.Clear()
	if m.Active() || m.View() != "" {
		t.Fatalf("clear should empty the overlay")
	}
}
