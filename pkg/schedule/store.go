// Package schedule owns the state of a single planned day: the unscheduled
// notes, the 48 half-hour slots and the day's priorities.
//
// A task id lives in at most one place at a time, either the notes list or
// exactly one slot. Every operation preserves that, and an id index is kept
// in step with each mutation so lookups do not scan the day.
package schedule

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/timebox/pkg/dirty"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

// PriorityCount is the number of free-text priorities per day.
const PriorityCount = 3

var (
	// ErrInvalidTarget is returned for slot times outside the 48 canonical slots.
	ErrInvalidTarget = errors.New("schedule: invalid slot time")
	// ErrInvalidPriority is returned for a priority index out of range.
	ErrInvalidPriority = errors.New("schedule: priority index out of range")
	// ErrDuplicateID is returned when restoring data that repeats a task id.
	ErrDuplicateID = errors.New("schedule: duplicate task id")
)

// Location says where a task currently lives. The zero value is the notes list.
type Location struct {
	Slot string
}

// Scheduled reports whether the location is a calendar slot.
func (l Location) Scheduled() bool {
	return l.Slot != ""
}

func (l Location) String() string {
	if l.Scheduled() {
		return l.Slot
	}
	return "notes"
}

// Store is the day aggregate. It is not safe for concurrent use; one actor
// owns it.
type Store struct {
	priorities []string
	notes      []*task.Task
	slots      []Slot
	index      map[string]Location
	tracker    *dirty.Tracker
}

// New returns an empty day. Mutations mark tracker; a nil tracker gets a
// private one.
func New(tracker *dirty.Tracker) *Store {
	if tracker == nil {
		tracker = &dirty.Tracker{}
	}
	return &Store{
		priorities: make([]string, PriorityCount),
		slots:      newSlots(),
		index:      make(map[string]Location),
		tracker:    tracker,
	}
}

// Dirty reports whether the store has unsaved mutations.
func (s *Store) Dirty() bool {
	return s.tracker.Dirty()
}

// Tracker exposes the dirty tracker shared with the session.
func (s *Store) Tracker() *dirty.Tracker {
	return s.tracker
}

// AddNote appends a new unscheduled task. Whitespace-only content is
// rejected and reported with ok == false.
func (s *Store) AddNote(content string) (t *task.Task, ok bool) {
	if strings.TrimSpace(content) == "" {
		return nil, false
	}
	t = task.New(content)
	s.notes = append(s.notes, t)
	s.index[t.ID] = Location{}
	s.tracker.Mark()
	return t.Clone(), true
}

// DeleteNote removes an unscheduled task. Unknown ids are ignored.
func (s *Store) DeleteNote(id string) {
	if i := s.noteIndex(id); i >= 0 {
		s.notes = removeAt(s.notes, i)
		delete(s.index, id)
	}
	s.tracker.Mark()
}

// DropOnSlot places t at the end of the slot at time. A task coming from the
// notes list leaves it; a task already scheduled elsewhere is moved; any
// other task is adopted as a new scheduled task.
func (s *Store) DropOnSlot(t *task.Task, time string) error {
	si, ok := slotIndex[time]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, time)
	}
	if t == nil {
		return nil
	}

	if loc, found := s.index[t.ID]; found && t.ID != "" {
		if loc.Scheduled() {
			return s.MoveTask(t.ID, loc.Slot, time)
		}
		i := s.noteIndex(t.ID)
		stored := s.notes[i]
		s.notes = removeAt(s.notes, i)
		s.slots[si].Tasks = append(s.slots[si].Tasks, stored)
	} else {
		adopted := t.Clone()
		if adopted.ID == "" {
			adopted.ID = task.NewID()
		}
		s.slots[si].Tasks = append(s.slots[si].Tasks, adopted)
		t = adopted
	}
	s.index[t.ID] = Location{Slot: time}
	s.tracker.Mark()
	return nil
}

// MoveTask moves a scheduled task from one slot to the end of another. When
// the source slot does not hold id nothing happens.
func (s *Store) MoveTask(id, from, to string) error {
	fi, ok := slotIndex[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, from)
	}
	ti, ok := slotIndex[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTarget, to)
	}
	i := taskIndex(s.slots[fi].Tasks, id)
	if i < 0 {
		return nil
	}
	moved := s.slots[fi].Tasks[i]
	s.slots[fi].Tasks = removeAt(s.slots[fi].Tasks, i)
	s.slots[ti].Tasks = append(s.slots[ti].Tasks, moved)
	s.index[id] = Location{Slot: to}
	s.tracker.Mark()
	return nil
}

// Drop dispatches a drag payload to DropOnSlot or MoveTask.
func (s *Store) Drop(p DragPayload, time string) error {
	switch p := p.(type) {
	case NoteDrag:
		return s.DropOnSlot(p.Task, time)
	case SlotDrag:
		if p.Task == nil {
			return nil
		}
		return s.MoveTask(p.Task.ID, p.Source, time)
	default:
		return fmt.Errorf("schedule: unsupported drag payload %T", p)
	}
}

// UnscheduleTask returns a scheduled task to the end of the notes list.
func (s *Store) UnscheduleTask(id string) {
	loc, ok := s.index[id]
	if !ok || !loc.Scheduled() {
		return
	}
	si := slotIndex[loc.Slot]
	i := taskIndex(s.slots[si].Tasks, id)
	t := s.slots[si].Tasks[i]
	s.slots[si].Tasks = removeAt(s.slots[si].Tasks, i)
	s.notes = append(s.notes, t)
	s.index[id] = Location{}
	s.tracker.Mark()
}

// UpdateTask merges u into the task wherever it lives. Unknown ids are ignored.
func (s *Store) UpdateTask(id string, u task.Update) {
	if t := s.lookup(id); t != nil {
		t.Apply(u)
	}
	s.tracker.Mark()
}

// CompleteTask marks the task completed wherever it lives.
func (s *Store) CompleteTask(id string) {
	s.UpdateTask(id, task.CompletedUpdate())
}

// ToggleTag adds tg to the task's tags, or removes it when present.
func (s *Store) ToggleTag(id string, tg tag.Tag) {
	t := s.lookup(id)
	if t == nil {
		s.tracker.Mark()
		return
	}
	tags := t.Tags.Toggle(tg)
	s.UpdateTask(id, task.Update{Tags: &tags})
}

// SetPriority replaces the priority text at index i (zero based).
func (s *Store) SetPriority(i int, text string) error {
	if i < 0 || i >= len(s.priorities) {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, i+1)
	}
	s.priorities[i] = text
	s.tracker.Mark()
	return nil
}

// Priorities returns a copy of the day's priorities.
func (s *Store) Priorities() []string {
	out := make([]string, len(s.priorities))
	copy(out, s.priorities)
	return out
}

// Notes returns copies of the unscheduled tasks in order.
func (s *Store) Notes() []*task.Task {
	return cloneTasks(s.notes)
}

// Slots returns copies of all 48 slots in day order.
func (s *Store) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	for i, sl := range s.slots {
		out[i] = Slot{Time: sl.Time, Tasks: cloneTasks(sl.Tasks)}
	}
	return out
}

// Slot returns a copy of the slot at time.
func (s *Store) Slot(time string) (Slot, bool) {
	si, ok := slotIndex[time]
	if !ok {
		return Slot{}, false
	}
	sl := s.slots[si]
	return Slot{Time: sl.Time, Tasks: cloneTasks(sl.Tasks)}, true
}

// Find returns a copy of the task with id and where it lives.
func (s *Store) Find(id string) (*task.Task, Location, bool) {
	loc, ok := s.index[id]
	if !ok {
		return nil, Location{}, false
	}
	return s.lookup(id).Clone(), loc, true
}

// Tasks returns copies of every task of the day, notes first then slots in
// day order.
func (s *Store) Tasks() []*task.Task {
	out := cloneTasks(s.notes)
	for _, sl := range s.slots {
		out = append(out, cloneTasks(sl.Tasks)...)
	}
	return out
}

// Len is the total number of tasks in the day.
func (s *Store) Len() int {
	return len(s.index)
}

func (s *Store) lookup(id string) *task.Task {
	loc, ok := s.index[id]
	if !ok {
		return nil
	}
	if !loc.Scheduled() {
		return s.notes[s.noteIndex(id)]
	}
	list := s.slots[slotIndex[loc.Slot]].Tasks
	return list[taskIndex(list, id)]
}

func (s *Store) noteIndex(id string) int {
	return taskIndex(s.notes, id)
}

func taskIndex(list []*task.Task, id string) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func removeAt(list []*task.Task, i int) []*task.Task {
	out := make([]*task.Task, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
