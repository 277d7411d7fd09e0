package session

import "fmt"

// PersistenceError reports a failed load or save. In-memory state is left
// consistent: a failed load falls back to an empty day, a failed save keeps
// the unsaved flag set.
type PersistenceError struct {
	Op   string
	Date string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session: %s %s: %v", e.Op, e.Date, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
