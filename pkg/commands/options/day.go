package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/timebox/pkg/session"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// DayOptions selects the day a command works on.
type DayOptions struct {
	DateString string
}

func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.DateString, "date", "d", "",
		`Specify the day, example: --date="2020-2-28", --date="2/28" or --date=yesterday. Defaults to today.`)
}

// Key resolves the flag to a YYYY-MM-DD key relative to now.
func (o *DayOptions) Key(now time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(o.DateString))
	switch s {
	case "", "today":
		return session.DateKey(now), nil
	case "yesterday":
		return session.DateKey(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return session.DateKey(now.AddDate(0, 0, 1)), nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", session.ErrInvalidDate, o.DateString)
		}
		t = t.AddDate(now.Year(), 0, 0)
	}
	return session.DateKey(t), nil
}
