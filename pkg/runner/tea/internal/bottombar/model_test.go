package bottombar

import (
	"strings"
	"testing"

	"tableflip.dev/timebox/pkg/runner/tea/internal/theme"
)

func TestStatusLineSegments(t *testing.T) {
	m := New(theme.Default().Footer)
	if view, h := m.View(); view != " " || h != 1 {
		t.Fatalf("empty footer = %q (%d)", view, h)
	}
	m.SetTimer("24:59")
	m.SetFilter("filter: Work")
	m.SetStatus("Added")
	view, _ := m.View()
	for _, want := range []string{"24:59", "filter: Work", "Added"} {
		if !strings.Contains(view, want) {
			t.Fatalf("footer %q missing %q", view, want)
		}
	}
	if strings.Index(view, "24:59") > strings.Index(view, "Added") {
		t.Fatalf("timer should lead the footer: %q", view)
	}
}

func TestCommandSuggestions(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetCommandDefinitions([]CommandOption{
		{Name: "write", Description: "save"},
		{Name: "wq", Description: "save and quit"},
		{Name: "quit", Description: "quit"},
	})
	m.SetMode(ModeCommand)
	m.UpdateCommandInput("w", "w")
	if got := m.Height(); got != 3 {
		t.Fatalf("height = %d, want 2 suggestions plus input", got)
	}
	view, _ := m.View()
	if strings.Contains(view, ":quit") {
		t.Fatalf("quit should be filtered out: %q", view)
	}
	if name, ok := m.Complete(); !ok || name != "write" {
		t.Fatalf("Complete() = %q, %t", name, ok)
	}
	m.UpdateCommandInput("zz", "zz")
	if _, ok := m.Complete(); ok {
		t.Fatalf("no suggestion should complete zz")
	}
	m.SetMode(ModeNormal)
	if m.Height() != 1 {
		t.Fatalf("normal mode height = %d", m.Height())
	}
	if _, ok := m.Complete(); ok {
		t.Fatalf("Complete outside command mode")
	}
}
