// Package analytics summarizes a day's tasks per tag.
package analytics

import (
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
)

// Untagged names the row collecting tasks without any tag.
const Untagged = "untagged"

// Row is the total for one tag. A task with several tags counts in each.
type Row struct {
	Tag       tag.Tag `json:"tag"`
	Tasks     int     `json:"tasks"`
	Completed int     `json:"completed"`
	Minutes   int     `json:"minutes"`
}

// ByTag returns one row per catalog tag in catalog order, followed by an
// Untagged row. Tags on tasks that are not in catalog are ignored.
func ByTag(tasks []*task.Task, catalog []tag.Tag) []Row {
	rows := make([]Row, len(catalog)+1)
	pos := make(map[string]int, len(catalog))
	for i, tg := range catalog {
		rows[i].Tag = tg
		pos[tg.ID] = i
	}
	untagged := len(catalog)
	rows[untagged].Tag = tag.Tag{Name: Untagged}

	for _, t := range tasks {
		if t == nil {
			continue
		}
		if len(t.Tags) == 0 {
			rows[untagged].add(t)
			continue
		}
		for _, tg := range t.Tags {
			if i, ok := pos[tg.ID]; ok {
				rows[i].add(t)
			}
		}
	}
	return rows
}

// Total sums every task once, regardless of tags.
func Total(tasks []*task.Task) Row {
	var r Row
	for _, t := range tasks {
		if t != nil {
			r.add(t)
		}
	}
	return r
}

func (r *Row) add(t *task.Task) {
	r.Tasks++
	if t.Completed {
		r.Completed++
	}
	r.Minutes += t.Minutes()
}
