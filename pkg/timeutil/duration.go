// Package timeutil parses and prints the short durations used for task
// estimates and report windows, such as "45m", "1h30m" or "1w2d".
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// unit is one duration token. The first name is the canonical one.
type unit struct {
	names []string
	size  time.Duration
}

// units is ordered largest first, the order FormatWindow prints them in.
var units = []unit{
	{[]string{"w", "wk", "wks", "week", "weeks"}, week},
	{[]string{"d", "day", "days"}, day},
	{[]string{"h", "hr", "hrs", "hour", "hours"}, time.Hour},
	{[]string{"m", "min", "mins", "minute", "minutes"}, time.Minute},
	{[]string{"s", "sec", "secs", "second", "seconds"}, time.Second},
}

var (
	segment = regexp.MustCompile(`(\d+)\s*([a-z]+)\s*`)
	sizes   = func() map[string]time.Duration {
		out := make(map[string]time.Duration)
		for _, u := range units {
			for _, n := range u.names {
				out[n] = u.size
			}
		}
		return out
	}()
)

// ParseWindow parses a duration such as "3d" or "1w2d6h" and returns it with
// its compact canonical label. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		s = DefaultWindow
	}
	d, err := parse(s)
	if err != nil {
		return 0, "", err
	}
	if d <= 0 {
		return 0, "", errors.New("duration must be greater than zero")
	}
	return d, FormatWindow(d), nil
}

func parse(s string) (time.Duration, error) {
	var total time.Duration
	pos := 0
	for _, m := range segment.FindAllStringSubmatchIndex(s, -1) {
		if m[0] != pos {
			break
		}
		value, err := strconv.ParseInt(s[m[2]:m[3]], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", s[m[2]:m[3]], err)
		}
		size, ok := sizes[s[m[4]:m[5]]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", s[m[4]:m[5]])
		}
		total += time.Duration(value) * size
		pos = m[1]
	}
	if pos != len(s) {
		return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(s[pos:]))
	}
	return total, nil
}

// FormatWindow prints d with week, day, hour, minute and second tokens,
// skipping zero ones: 90 minutes is "1h30m".
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.names[0])
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// ParseMinutes parses a task duration such as "45", "45m", "1h30m" or
// "90 mins" into whole minutes. A bare number is minutes.
func ParseMinutes(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, errors.New("duration required")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, errors.New("duration must not be negative")
		}
		return n, nil
	}
	d, err := parse(strings.ToLower(s))
	if err != nil {
		return 0, err
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("duration %q is not a whole number of minutes", s)
	}
	return int(d / time.Minute), nil
}

// FormatMinutes prints minutes the way FormatWindow does, "0m" for none.
func FormatMinutes(m int) string {
	if m <= 0 {
		return "0m"
	}
	return FormatWindow(time.Duration(m) * time.Minute)
}
