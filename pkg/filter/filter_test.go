package filter

import (
	"reflect"
	"testing"

	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/tag"
)

var (
	work     = tag.MustNew("1", "Work", "#ff0000")
	personal = tag.MustNew("2", "Personal", "#00ff00")
	study    = tag.MustNew("3", "Study", "#0000ff")
)

func fixture(t *testing.T) *schedule.Store {
	t.Helper()
	s := schedule.New(nil)
	report, _ := s.AddNote("report")
	s.ToggleTag(report.ID, work)
	gym, _ := s.AddNote("gym")
	s.ToggleTag(gym.ID, personal)
	s.AddNote("untagged")

	standup, _ := s.AddNote("standup")
	s.ToggleTag(standup.ID, work)
	s.ToggleTag(standup.ID, study)
	if err := s.DropOnSlot(standup, "09:00"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	lunch, _ := s.AddNote("lunch")
	if err := s.DropOnSlot(lunch, "12:00"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	return s
}

func contents(v View) (notes []string, slots map[string][]string) {
	slots = make(map[string][]string)
	for _, n := range v.Notes {
		notes = append(notes, n.Content)
	}
	for _, sl := range v.Slots {
		for _, tk := range sl.Tasks {
			slots[sl.Time] = append(slots[sl.Time], tk.Content)
		}
	}
	return notes, slots
}

func TestEmptySelectionIsIdentity(t *testing.T) {
	s := fixture(t)
	v := Day(s, Selection{})
	if len(v.Slots) != schedule.SlotCount {
		t.Fatalf("expected %d slots, got %d", schedule.SlotCount, len(v.Slots))
	}
	if !reflect.DeepEqual(v.Notes, s.Notes()) || !reflect.DeepEqual(v.Slots, s.Slots()) {
		t.Fatalf("empty selection should equal the unfiltered day")
	}
}

func TestSelectionIntersects(t *testing.T) {
	s := fixture(t)
	v := Day(s, NewSelection(work))
	notes, slots := contents(v)
	if !reflect.DeepEqual(notes, []string{"report"}) {
		t.Fatalf("unexpected notes %v", notes)
	}
	if !reflect.DeepEqual(slots, map[string][]string{"09:00": {"standup"}}) {
		t.Fatalf("unexpected slots %v", slots)
	}
	if len(v.Slots) != schedule.SlotCount {
		t.Fatalf("slot structure must be preserved")
	}

	v = Day(s, NewSelection(personal, study))
	notes, slots = contents(v)
	if !reflect.DeepEqual(notes, []string{"gym"}) || len(slots["09:00"]) != 1 {
		t.Fatalf("union of selected tags expected, got %v %v", notes, slots)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	s := fixture(t)
	sel := NewSelection(work)
	once := Day(s, sel)
	twice := Apply(once.Notes, once.Slots, sel)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("filtering twice changed the view")
	}
}

func TestViewTracksStore(t *testing.T) {
	s := fixture(t)
	sel := NewSelection(personal)
	before, _ := contents(Day(s, sel))

	n, _ := s.AddNote("walk")
	s.ToggleTag(n.ID, personal)
	after, _ := contents(Day(s, sel))
	if len(after) != len(before)+1 {
		t.Fatalf("view should reflect the new note, got %v", after)
	}
}

func TestSelectionToggle(t *testing.T) {
	sel := Selection{}.Toggle(work).Toggle(study)
	if !sel.Has("1") || !sel.Has("3") {
		t.Fatalf("expected both selected")
	}
	sel = sel.Toggle(work)
	if sel.Has("1") || sel.Empty() {
		t.Fatalf("expected only study selected")
	}
	if NewSelection(work, work).Tags().IDs()[0] != "1" || len(NewSelection(work, work).Tags()) != 1 {
		t.Fatalf("duplicates must collapse")
	}
}
