package analytics

import (
	"testing"

	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

func minutes(n int) *int { return &n }

func TestByTag(t *testing.T) {
	reg := tag.Default()
	work, _ := reg.Get("1")
	study, _ := reg.Get("3")
	stray := tag.MustNew("99", "Stray", "#123456")

	tasks := []*task.Task{
		{ID: "a", Tags: tag.Set{work}, Duration: minutes(30), Completed: true},
		{ID: "b", Tags: tag.Set{work, study}, Duration: minutes(45)},
		{ID: "c", Duration: minutes(15)},
		{ID: "d", Tags: tag.Set{stray}},
		nil,
	}
	rows := ByTag(tasks, reg.All())
	if len(rows) != reg.Len()+1 {
		t.Fatalf("rows = %d", len(rows))
	}

	want := map[string]Row{
		"Work":     {Tasks: 2, Completed: 1, Minutes: 75},
		"Personal": {},
		"Study":    {Tasks: 1, Minutes: 45},
		"Health":   {},
		Untagged:   {Tasks: 1, Minutes: 15},
	}
	for _, r := range rows {
		w, ok := want[r.Tag.Name]
		if !ok {
			t.Fatalf("unexpected row %q", r.Tag.Name)
		}
		if r.Tasks != w.Tasks || r.Completed != w.Completed || r.Minutes != w.Minutes {
			t.Fatalf("%s = %+v, want %+v", r.Tag.Name, r, w)
		}
	}
	if rows[len(rows)-1].Tag.Name != Untagged {
		t.Fatalf("untagged row must be last")
	}
	if rows[0].Tag.ID != "1" {
		t.Fatalf("rows must follow catalog order")
	}
}

func TestTotal(t *testing.T) {
	tasks := []*task.Task{
		{ID: "a", Duration: minutes(30), Completed: true},
		{ID: "b", Duration: minutes(45)},
		{ID: "c"},
	}
	got := Total(tasks)
	if got.Tasks != 3 || got.Completed != 1 || got.Minutes != 75 {
		t.Fatalf("Total = %+v", got)
	}
}
