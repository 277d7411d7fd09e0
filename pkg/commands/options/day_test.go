package options

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/timebox/pkg/session"
)

func TestDayOptionsKey(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	tests := map[string]string{
		"":           "2024-03-15",
		"today":      "2024-03-15",
		"Yesterday":  "2024-03-14",
		"tomorrow":   "2024-03-16",
		"2024-2-29":  "2024-02-29",
		"2023-12-01": "2023-12-01",
		"3/1":        "2024-03-01",
	}
	for in, want := range tests {
		o := &DayOptions{DateString: in}
		got, err := o.Key(now)
		if err != nil {
			t.Fatalf("Key(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := (&DayOptions{DateString: "someday"}).Key(now); !errors.Is(err, session.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
