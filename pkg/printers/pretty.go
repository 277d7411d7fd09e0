package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/timebox/pkg/analytics"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/tag"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	// AllSlots prints empty slots too.
	AllSlots bool
	Out      io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0190b7e2-9c1e-7d3a-8f00-1a2b3c4d5e6f  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Saved prints when the day was last written.
func (pp *PrettyPrint) Saved(at time.Time, dirty bool) {
	f := color.New(color.Faint, color.Italic)
	switch {
	case dirty:
		_, _ = color.New(color.FgYellow).Fprintln(pp.out(), "unsaved changes")
	case at.IsZero():
		_, _ = f.Fprintln(pp.out(), "never saved")
	default:
		_, _ = f.Fprintf(pp.out(), "saved %s\n", humanize.Time(at))
	}
}

// Priorities prints the numbered priorities, blanks included.
func (pp *PrettyPrint) Priorities(title string, priorities []string) {
	pp.Title(title)
	f := color.New(color.Faint, color.Italic)
	for i, p := range priorities {
		if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), spacing)
		}
		if strings.TrimSpace(p) == "" {
			_, _ = f.Fprintf(pp.out(), "%d. -\n", i+1)
			continue
		}
		_, _ = fmt.Fprintf(pp.out(), "%d. %s\n", i+1, p)
	}
	pp.NewLine()
}

// Notes prints unscheduled tasks.
func (pp *PrettyPrint) Notes(title string, tasks ...*task.Task) {
	pp.TitleWithCount(title, len(tasks))
	if len(tasks) == 0 {
		pp.none()
		return
	}
	for _, t := range tasks {
		pp.taskLine(t)
	}
	pp.NewLine()
}

// Schedule prints slots as a time table. Empty slots are skipped unless
// AllSlots is set.
func (pp *PrettyPrint) Schedule(title string, slots ...schedule.Slot) {
	pp.Title(title)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 80
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	rows := 0
	for _, sl := range slots {
		if len(sl.Tasks) == 0 {
			if pp.AllSlots {
				pp.slotRow(tbl, faint.Sprint(sl.Time), nil)
				rows++
			}
			continue
		}
		for i, t := range sl.Tasks {
			at := bold.Sprint(sl.Time)
			if i > 0 {
				at = ""
			}
			pp.slotRow(tbl, at, t)
			rows++
		}
	}
	if rows == 0 {
		pp.none()
		return
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

func (pp *PrettyPrint) slotRow(tbl *uitable.Table, at string, t *task.Task) {
	text, id := "", ""
	if t != nil {
		text, id = pp.taskText(t), t.ID
	}
	if pp.ShowID {
		tbl.AddRow(color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(id), at, text)
		return
	}
	tbl.AddRow(at, text)
}

// Stats prints per-tag totals.
func (pp *PrettyPrint) Stats(rows []analytics.Row, total analytics.Row) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Tag"), bold.Sprint("Tasks"), bold.Sprint("Done"), bold.Sprint("Time"))
	for _, r := range rows {
		name := r.Tag.Name
		if r.Tag.ID != "" {
			name = Chip(r.Tag)
		}
		tbl.AddRow(name, humanize.Comma(int64(r.Tasks)), humanize.Comma(int64(r.Completed)), timeutil.FormatMinutes(r.Minutes))
	}
	tbl.AddRow(bold.Sprint("Total"), humanize.Comma(int64(total.Tasks)), humanize.Comma(int64(total.Completed)), timeutil.FormatMinutes(total.Minutes))
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Tags prints the tag catalog.
func (pp *PrettyPrint) Tags(tags ...tag.Tag) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Tag"), bold.Sprint("Color"))
	for _, tg := range tags {
		tbl.AddRow(tg.ID, Chip(tg), tg.Color)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Task prints a single task line.
func (pp *PrettyPrint) Task(t *task.Task) {
	pp.taskLine(t)
}

// Chip renders a tag name in its color.
func Chip(t tag.Tag) string {
	r, g, b := t.RGB()
	return color.RGB(int(r), int(g), int(b)).Sprint("#" + t.Name)
}

func (pp *PrettyPrint) taskLine(t *task.Task) {
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Fprint(pp.out(), t.ID)
		if pad := len(spacing) - len(t.ID); pad > 0 {
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
		} else {
			_, _ = y.Fprint(pp.out(), "  ")
		}
	}
	_, _ = fmt.Fprintln(pp.out(), pp.taskText(t))
}

func (pp *PrettyPrint) taskText(t *task.Task) string {
	var b strings.Builder
	if t.Completed {
		b.WriteString(color.New(color.FgGreen).Sprint("✔"))
		b.WriteString(" ")
		b.WriteString(color.New(color.CrossedOut, color.Faint).Sprint(t.Content))
	} else {
		b.WriteString("•")
		b.WriteString(" ")
		b.WriteString(t.Content)
	}
	for _, tg := range t.Tags {
		b.WriteString(" ")
		b.WriteString(Chip(tg))
	}
	if m := t.Minutes(); m > 0 {
		b.WriteString(color.New(color.Faint).Sprintf(" (%s)", timeutil.FormatMinutes(m)))
	}
	return b.String()
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}
