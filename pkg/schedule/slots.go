package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/timebox/pkg/task"
)

// SlotCount is the number of half-hour slots in a day.
const SlotCount = 48

var canonicalTimes = func() []string {
	times := make([]string, 0, SlotCount)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}()

// Slot is one half-hour bucket of the day. Identity is Time ("HH:MM").
type Slot struct {
	Time  string       `json:"time"`
	Tasks []*task.Task `json:"tasks"`
}

// Times returns the 48 canonical slot times in day order.
func Times() []string {
	out := make([]string, len(canonicalTimes))
	copy(out, canonicalTimes)
	return out
}

// ValidTime reports whether s exactly matches a canonical slot time.
func ValidTime(s string) bool {
	_, ok := slotIndex[s]
	return ok
}

// NormalizeTime accepts loose forms such as "9:00" or " 09:30 " and returns
// the canonical "HH:MM" slot time.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if ValidTime(s) {
		return s, nil
	}
	h, m, ok := strings.Cut(s, ":")
	if !ok || !digits(h) || !digits(m) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	out := fmt.Sprintf("%02d:%02d", hour, minute)
	if !ValidTime(out) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}
	return out, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var slotIndex = func() map[string]int {
	idx := make(map[string]int, SlotCount)
	for i, t := range canonicalTimes {
		idx[t] = i
	}
	return idx
}()

func newSlots() []Slot {
	slots := make([]Slot, SlotCount)
	for i, t := range canonicalTimes {
		slots[i] = Slot{Time: t}
	}
	return slots
}

func cloneTasks(in []*task.Task) []*task.Task {
	out := make([]*task.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}
