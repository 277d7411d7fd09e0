package schedule

import (
	"errors"
	"testing"

	"tableflip.dev/timebox/pkg/dirty"
	"tableflip.dev/timebox/pkg/task"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"9:00", "09:00", false},
		{" 9:30 ", "09:30", false},
		{"23:30", "23:30", false},
		{"24:00", "", true},
		{"9:15", "", true},
		{"nine", "", true},
		{"-0:30", "", true},
		{"+9:00", "", true},
		{"9:+30", "", true},
		{":30", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeTime(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidTarget) {
				t.Fatalf("NormalizeTime(%q) expected ErrInvalidTarget, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("NormalizeTime(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := New(nil)
	a, _ := s.AddNote("a")
	b, _ := s.AddNote("b")
	c, _ := s.AddNote("c")
	_ = s.DropOnSlot(b, "10:00")
	_ = s.DropOnSlot(c, "10:00")
	_ = s.SetPriority(1, "second")
	s.CompleteTask(c.ID)

	snap := s.Snapshot()
	if len(snap.Schedule) != 1 {
		t.Fatalf("only non-empty slots should be captured, got %d", len(snap.Schedule))
	}

	tr := &dirty.Tracker{}
	r, err := Restore(snap, tr)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if tr.Dirty() {
		t.Fatalf("restore must not mark dirty")
	}
	if notes := r.Notes(); len(notes) != 1 || notes[0].ID != a.ID {
		t.Fatalf("notes not restored")
	}
	ids := slotIDs(t, r, "10:00")
	if len(ids) != 2 || ids[0] != b.ID || ids[1] != c.ID {
		t.Fatalf("slot order not restored: %v", ids)
	}
	if got, _, _ := r.Find(c.ID); !got.Completed {
		t.Fatalf("completion not restored")
	}
	if r.Priorities()[1] != "second" {
		t.Fatalf("priorities not restored")
	}
	assertSingleLocation(t, r)
}

func TestRestoreNormalizesLooseKeys(t *testing.T) {
	r, err := Restore(Snapshot{Schedule: map[string][]*task.Task{
		"9:00": {{ID: "x", Content: "stand-up"}},
	}}, nil)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if ids := slotIDs(t, r, "09:00"); len(ids) != 1 || ids[0] != "x" {
		t.Fatalf("expected task in 09:00, got %v", ids)
	}
}

func TestRestoreRejectsMalformed(t *testing.T) {
	_, err := Restore(Snapshot{
		Notes:    []*task.Task{{ID: "dup"}},
		Schedule: map[string][]*task.Task{"08:00": {{ID: "dup"}}},
	}, nil)
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	_, err = Restore(Snapshot{Schedule: map[string][]*task.Task{"8:10": {{ID: "x"}}}}, nil)
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
}
