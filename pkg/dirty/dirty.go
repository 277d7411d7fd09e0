// Package dirty tracks whether in-memory planner state diverges from the
// last persisted snapshot.
package dirty

// Tracker is the has-unsaved-changes flag. It is owned by the single actor
// driving a day session and is not safe for concurrent use.
type Tracker struct {
	dirty bool
}

// Mark records an unsaved mutation.
func (t *Tracker) Mark() {
	t.dirty = true
}

// Clear records that state matches persistence again (save or fresh load).
func (t *Tracker) Clear() {
	t.dirty = false
}

// Dirty reports whether there are unsaved changes.
func (t *Tracker) Dirty() bool {
	return t.dirty
}
