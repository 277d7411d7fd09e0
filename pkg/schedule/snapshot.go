package schedule

import (
	"fmt"
	"sort"

	"tableflip.dev/timebox/pkg/dirty"
	"tableflip.dev/timebox/pkg/task"
)

// Snapshot is a detached copy of a day used for persistence.
type Snapshot struct {
	Priorities []string
	Notes      []*task.Task
	Schedule   map[string][]*task.Task
}

// Snapshot copies the current state. Empty slots are omitted from Schedule.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Priorities: s.Priorities(),
		Notes:      s.Notes(),
		Schedule:   make(map[string][]*task.Task),
	}
	for _, sl := range s.slots {
		if len(sl.Tasks) > 0 {
			snap.Schedule[sl.Time] = cloneTasks(sl.Tasks)
		}
	}
	return snap
}

// Restore builds a store from a snapshot without marking it dirty. Slot keys
// are normalized; keys that are not slot times and repeated task ids are
// rejected.
func Restore(snap Snapshot, tracker *dirty.Tracker) (*Store, error) {
	s := New(tracker)
	for i, p := range snap.Priorities {
		if i >= len(s.priorities) {
			break
		}
		s.priorities[i] = p
	}

	for _, t := range snap.Notes {
		if t == nil {
			continue
		}
		cp, err := s.adopt(t, Location{})
		if err != nil {
			return nil, err
		}
		s.notes = append(s.notes, cp)
	}

	type keyed struct{ raw, canon string }
	keys := make([]keyed, 0, len(snap.Schedule))
	for raw := range snap.Schedule {
		canon, err := NormalizeTime(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, keyed{raw: raw, canon: canon})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].canon != keys[j].canon {
			return keys[i].canon < keys[j].canon
		}
		return keys[i].raw < keys[j].raw
	})
	for _, k := range keys {
		si := slotIndex[k.canon]
		for _, t := range snap.Schedule[k.raw] {
			if t == nil {
				continue
			}
			cp, err := s.adopt(t, Location{Slot: k.canon})
			if err != nil {
				return nil, err
			}
			s.slots[si].Tasks = append(s.slots[si].Tasks, cp)
		}
	}
	return s, nil
}

func (s *Store) adopt(t *task.Task, loc Location) (*task.Task, error) {
	cp := t.Clone()
	if cp.ID == "" {
		cp.ID = task.NewID()
	}
	if _, dup := s.index[cp.ID]; dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, cp.ID)
	}
	s.index[cp.ID] = loc
	return cp, nil
}
