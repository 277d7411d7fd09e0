package task

import (
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/timebox/pkg/tag"
)

func TestNewTrimsAndStartsOpen(t *testing.T) {
	tk := New("  Buy milk  ")
	if tk.Content != "Buy milk" {
		t.Fatalf("expected trimmed content, got %q", tk.Content)
	}
	if tk.Completed {
		t.Fatalf("new task must not be completed")
	}
	if len(tk.Tags) != 0 {
		t.Fatalf("new task must have no tags")
	}
	if tk.ID == "" {
		t.Fatalf("expected id")
	}
}

func TestNewIDIsTimeOrdered(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	if a == b {
		t.Fatalf("ids must be unique")
	}
	if !(a < b) {
		t.Fatalf("expected %s < %s", a, b)
	}
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	tk := New("draft")
	work := tag.MustNew("1", "Work", "#ff0000")
	tags := tag.Set{work}
	minutes := 45

	tk.Apply(Update{Tags: &tags, Duration: &minutes})
	if tk.Content != "draft" {
		t.Fatalf("content should be untouched, got %q", tk.Content)
	}
	if !tk.Tags.Has("1") || tk.Minutes() != 45 {
		t.Fatalf("expected tags and duration applied, got %+v", tk)
	}

	tags[0] = tag.MustNew("2", "Personal", "#00ff00")
	minutes = 5
	if !tk.Tags.Has("1") || tk.Minutes() != 45 {
		t.Fatalf("apply must copy caller values")
	}

	tk.Apply(CompletedUpdate())
	if !tk.Completed {
		t.Fatalf("expected completed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	minutes := 30
	tk := New("read")
	tk.Tags = tag.Set{tag.MustNew("3", "Study", "#0000ff")}
	tk.Duration = &minutes

	cp := tk.Clone()
	cp.Tags[0] = tag.MustNew("4", "Health", "#ff00ff")
	*cp.Duration = 10
	if tk.Tags[0].ID != "3" || tk.Minutes() != 30 {
		t.Fatalf("clone aliases original: %+v", tk)
	}
}

func TestTimestampJSON(t *testing.T) {
	when := time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)
	b, err := json.Marshal(Timestamp{Time: when})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-03-04T09:30:00Z"` {
		t.Fatalf("unexpected json %s", b)
	}
	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(when) {
		t.Fatalf("round trip mismatch %v", back)
	}
	var zero Timestamp
	if err := json.Unmarshal([]byte(`""`), &zero); err != nil || !zero.IsZero() {
		t.Fatalf("empty timestamp should decode to zero: %v", err)
	}
}

func TestDerivedIDIsDeterministic(t *testing.T) {
	a := DerivedID("2024-03-01/notes", "0", "call bob")
	if a != DerivedID("2024-03-01/notes", "0", "call bob") {
		t.Fatalf("same parts gave different ids")
	}
	if a == DerivedID("2024-03-01/notes", "1", "call bob") {
		t.Fatalf("different parts gave the same id")
	}
}
