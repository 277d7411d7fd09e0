package printers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timeutil"
)

// Markdown renders a day as a markdown document.
func Markdown(title string, d *session.DaySession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s · %s\n\n", title, d.Date)

	b.WriteString("## Priorities\n\n")
	for i, p := range d.Priorities {
		if strings.TrimSpace(p) == "" {
			p = "_none_"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}

	b.WriteString("\n## Notes\n\n")
	if len(d.Notes) == 0 {
		b.WriteString("_none_\n")
	}
	for _, t := range d.Notes {
		b.WriteString(markdownTask(t))
	}

	b.WriteString("\n## Schedule\n\n")
	times := make([]string, 0, len(d.Schedule))
	for at, tasks := range d.Schedule {
		if len(tasks) > 0 {
			times = append(times, at)
		}
	}
	sort.Strings(times)
	if len(times) == 0 {
		b.WriteString("_nothing scheduled_\n")
	}
	for _, at := range times {
		fmt.Fprintf(&b, "### %s\n\n", at)
		for _, t := range d.Schedule[at] {
			b.WriteString(markdownTask(t))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func markdownTask(t *task.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("- [%s] %s", mark, t.Content)
	for _, tg := range t.Tags {
		line += " `#" + tg.Name + "`"
	}
	if m := t.Minutes(); m > 0 {
		line += " _(" + timeutil.FormatMinutes(m) + ")_"
	}
	return line + "\n"
}

// RenderMarkdown styles markdown for the terminal, picking the glamour style
// that suits the terminal background.
func RenderMarkdown(md string, width int) (string, error) {
	style := "light"
	if termenv.HasDarkBackground() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
