// Package filter derives the visible part of a day from a tag selection.
// It holds no state of its own, so views are always recomputed from the
// store and can never go stale.
package filter

import (
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

// Selection is the set of tags the user is filtering by.
type Selection struct {
	tags tag.Set
}

// NewSelection returns a selection holding tags.
func NewSelection(tags ...tag.Tag) Selection {
	var s Selection
	for _, t := range tags {
		if !s.tags.Has(t.ID) {
			s.tags = append(s.tags, t)
		}
	}
	return s
}

// Toggle returns the selection with t flipped.
func (s Selection) Toggle(t tag.Tag) Selection {
	return Selection{tags: s.tags.Toggle(t)}
}

// Has reports whether the tag id is selected.
func (s Selection) Has(id string) bool {
	return s.tags.Has(id)
}

// Empty reports whether no tag is selected.
func (s Selection) Empty() bool {
	return len(s.tags) == 0
}

// Tags returns the selected tags in selection order.
func (s Selection) Tags() tag.Set {
	return s.tags.Clone()
}

// Matches reports whether t is visible under s.
func (s Selection) Matches(t *task.Task) bool {
	if s.Empty() {
		return true
	}
	return t.Tags.Intersects(s.tags)
}

// View is the visible projection of a day.
type View struct {
	Notes []*task.Task
	Slots []schedule.Slot
}

// Apply filters notes and every slot independently. The slot list keeps its
// full length even when slots end up empty.
func Apply(notes []*task.Task, slots []schedule.Slot, sel Selection) View {
	v := View{
		Notes: keep(notes, sel),
		Slots: make([]schedule.Slot, len(slots)),
	}
	for i, sl := range slots {
		v.Slots[i] = schedule.Slot{Time: sl.Time, Tasks: keep(sl.Tasks, sel)}
	}
	return v
}

// Day filters the current state of a store.
func Day(s *schedule.Store, sel Selection) View {
	return Apply(s.Notes(), s.Slots(), sel)
}

func keep(in []*task.Task, sel Selection) []*task.Task {
	out := make([]*task.Task, 0, len(in))
	for _, t := range in {
		if sel.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
