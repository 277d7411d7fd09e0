package schedule

import "tableflip.dev/timebox/pkg/task"

// DragPayload is what a drag gesture carries onto a slot.
type DragPayload interface {
	isDragPayload()
}

// NoteDrag is a task dragged from the notes list, or an ad-hoc item from
// outside the planner.
type NoteDrag struct {
	Task *task.Task
}

// SlotDrag is a task dragged out of an already scheduled slot.
type SlotDrag struct {
	Task   *task.Task
	Source string
}

func (NoteDrag) isDragPayload() {}
func (SlotDrag) isDragPayload() {}
