package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Months prints one grid per month between since and until, bolding the days
// with tasks. counts is keyed by YYYY-MM-DD.
func (pp *PrettyPrint) Months(since, until time.Time, counts map[string]int) {
	then := time.Date(since.Year(), since.Month(), 1, 1, 0, 0, 0, time.Local)
	last := time.Date(until.Year(), until.Month(), 1, 1, 0, 0, 0, time.Local)
	for !then.After(last) {
		days := DaysIn(then)
		count := make([]int, days)
		for i := range count {
			day := time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, time.Local)
			count[i] = counts[day.Format("2006-01-02")]
		}
		pp.PrintMonthCount(then, count)
		then = NextMonth(then)
	}
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", max(mid, 0)), m, strings.Repeat(" ", max(width-mid-len(m), 0)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
