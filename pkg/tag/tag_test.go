package tag

import (
	"errors"
	"testing"
)

func TestNewNormalizesColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#FF0000", "#ff0000"},
		{"#0f0", "#00ff00"},
		{" #0000ff ", "#0000ff"},
	}
	for _, tt := range tests {
		got, err := New("x", "X", tt.in)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.in, err)
		}
		if got.Color != tt.want {
			t.Fatalf("New(%q) color = %q, want %q", tt.in, got.Color, tt.want)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("", "Work", "#ff0000"); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if _, err := New("1", "Work", "red"); err == nil {
		t.Fatalf("expected error for non-hex color")
	}
}

func TestRGB(t *testing.T) {
	r, g, b := MustNew("4", "Health", "#ff00ff").RGB()
	if r != 255 || g != 0 || b != 255 {
		t.Fatalf("unexpected rgb %d,%d,%d", r, g, b)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := Default()
	if reg.Len() != 4 {
		t.Fatalf("expected 4 default tags, got %d", reg.Len())
	}
	byID, err := reg.Resolve("3")
	if err != nil || byID.Name != "Study" {
		t.Fatalf("resolve by id: %v %v", byID, err)
	}
	byName, err := reg.Resolve("health")
	if err != nil || byName.ID != "4" {
		t.Fatalf("resolve by name: %v %v", byName, err)
	}
	if _, err := reg.Resolve("errands"); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestRegistryIgnoresDuplicates(t *testing.T) {
	reg := NewRegistry(MustNew("1", "A", "#000"), MustNew("1", "B", "#fff"))
	if reg.Len() != 1 {
		t.Fatalf("expected duplicate id to be ignored")
	}
	if got, _ := reg.Get("1"); got.Name != "A" {
		t.Fatalf("expected first tag to win, got %q", got.Name)
	}
}

func TestSetToggle(t *testing.T) {
	work := MustNew("1", "Work", "#ff0000")
	study := MustNew("3", "Study", "#0000ff")

	var s Set
	s = s.Toggle(work)
	s = s.Toggle(study)
	if !s.Has("1") || !s.Has("3") || len(s) != 2 {
		t.Fatalf("expected both tags, got %v", s.IDs())
	}
	s2 := s.Toggle(work)
	if s2.Has("1") || len(s2) != 1 {
		t.Fatalf("expected work removed, got %v", s2.IDs())
	}
	if !s.Has("1") {
		t.Fatalf("toggle must not mutate the receiver")
	}
}

func TestSetIntersects(t *testing.T) {
	work := MustNew("1", "Work", "#ff0000")
	study := MustNew("3", "Study", "#0000ff")
	if (Set{work}).Intersects(Set{study}) {
		t.Fatalf("disjoint sets should not intersect")
	}
	if !(Set{work, study}).Intersects(Set{study}) {
		t.Fatalf("expected intersection")
	}
	if (Set{}).Intersects(Set{work}) {
		t.Fatalf("empty set intersects nothing")
	}
}
