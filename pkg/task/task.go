// Package task defines the task record that moves between the notes list and
// the calendar slots of a day.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/timebox/pkg/tag"
)

// Task is a unit of work. A note is simply a task that is not scheduled yet.
type Task struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	Tags      tag.Set   `json:"tags,omitempty"`
	Duration  *int      `json:"duration,omitempty"` // minutes
	Created   Timestamp `json:"created"`
}

// New creates an open task with a fresh time-ordered id.
func New(content string) *Task {
	return &Task{
		ID:      NewID(),
		Content: strings.TrimSpace(content),
		Created: Timestamp{Time: time.Now()},
	}
}

// NewID returns a UUIDv7 string. v7 ids sort by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// DerivedID returns a name-based id for parts. The same parts always give
// the same id, so records stored without ids keep them across reads.
func DerivedID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "\x00"))).String()
}

// Update carries a partial set of fields. Nil fields are left untouched.
type Update struct {
	Content   *string
	Tags      *tag.Set
	Completed *bool
	Duration  *int
}

// Apply merges u into t in place.
func (t *Task) Apply(u Update) {
	if u.Content != nil {
		t.Content = *u.Content
	}
	if u.Tags != nil {
		t.Tags = u.Tags.Clone()
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Duration != nil {
		d := *u.Duration
		t.Duration = &d
	}
}

// Clone returns a deep copy so read projections cannot alias store state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Tags = t.Tags.Clone()
	if t.Duration != nil {
		d := *t.Duration
		cp.Duration = &d
	}
	return &cp
}

// Minutes returns the duration or zero when unset.
func (t *Task) Minutes() int {
	if t.Duration == nil {
		return 0
	}
	return *t.Duration
}

func (t *Task) String() string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	return mark + " " + t.Content
}

// CompletedUpdate returns an Update that marks a task completed.
func CompletedUpdate() Update {
	done := true
	return Update{Completed: &done}
}
