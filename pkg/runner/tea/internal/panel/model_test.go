package panel

import (
	"strings"
	"testing"
)

func TestPanelWrapsAndResets(t *testing.T) {
	m := New(10)
	if view, h := m.View(); view != "" || h != 0 {
		t.Fatalf("empty panel rendered %q (%d lines)", view, h)
	}
	m.SetContent("Help", "one two three four five six")
	view, h := m.View()
	if !strings.Contains(view, "Help") {
		t.Fatalf("title missing from %q", view)
	}
	// Two border lines, the title and at least three wrapped body lines.
	if h < 6 {
		t.Fatalf("height = %d, want wrapped body", h)
	}
	m.Reset()
	if !m.Empty() {
		t.Fatalf("panel not empty after Reset")
	}
}
