// Package report renders the completed-tasks report as a scrollable overlay.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/runner/tea/internal/theme"
	"tableflip.dev/timebox/pkg/timeutil"
)

// Model renders and scrolls the completion report overlay.
type Model struct {
	lines  []string
	offset int

	viewportWidth  int
	viewportHeight int

	theme theme.Theme
}

// New creates a report overlay model.
func New(th theme.Theme) *Model {
	return &Model{theme: th}
}

// Active reports whether the overlay has content.
func (m *Model) Active() bool {
	return len(m.lines) > 0
}

// Clear removes current report data.
func (m *Model) Clear() {
	m.lines = nil
	m.offset = 0
}

// SetViewport configures the usable width/height for rendering.
func (m *Model) SetViewport(totalWidth, availableHeight int) {
	m.viewportWidth = max(totalWidth-6, 20)
	m.viewportHeight = max(availableHeight, 3)
	m.ensureBounds()
}

// SetData stores the report result and rebuilds the rendered lines.
func (m *Model) SetData(label string, result app.ReportResult) {
	m.lines = m.buildLines(label, result)
	m.offset = 0
	m.ensureBounds()
}

// ScrollLines moves the viewport by delta lines.
func (m *Model) ScrollLines(delta int) {
	m.offset += delta
	m.ensureBounds()
}

// ScrollPages moves the viewport by page deltas.
func (m *Model) ScrollPages(delta int) {
	m.offset += delta * m.viewportHeight
	m.ensureBounds()
}

// ScrollHome jumps to the start of the overlay.
func (m *Model) ScrollHome() {
	m.offset = 0
}

// ScrollEnd jumps to the end of the overlay.
func (m *Model) ScrollEnd() {
	m.offset = len(m.lines)
	m.ensureBounds()
}

// View returns the rendered report overlay.
func (m *Model) View() string {
	if len(m.lines) == 0 || m.viewportHeight == 0 {
		return ""
	}
	m.ensureBounds()
	end := min(m.offset+m.viewportHeight, len(m.lines))
	viewport := m.lines[m.offset:end]
	padded := make([]string, len(viewport))
	for i, line := range viewport {
		padded[i] = padRight(line, m.viewportWidth)
	}
	frame := m.theme.Report.Frame.Width(m.viewportWidth + 4)
	return frame.Render(strings.Join(padded, "\n"))
}

func (m *Model) buildLines(label string, result app.ReportResult) []string {
	th := m.theme.Report
	header := th.Header.Render(
		fmt.Sprintf("Report · last %s (%s → %s)", label, formatTime(result.Since), formatTime(result.Until)),
	)
	summary := th.Text.Render(fmt.Sprintf("%d of %d tasks completed, %s planned",
		result.Total.Completed, result.Total.Tasks, timeutil.FormatMinutes(result.Total.Minutes)))
	lines := []string{header, summary, ""}

	if result.Total.Completed == 0 {
		return append(lines, th.Text.Render("No completed tasks found in this window."))
	}

	for _, sec := range result.Sections {
		if len(sec.Done) == 0 {
			continue
		}
		lines = append(lines, th.Header.Render(fmt.Sprintf("%s  %d/%d", sec.Date, sec.Total.Completed, sec.Total.Tasks)))
		for _, item := range sec.Done {
			if item.Task == nil {
				continue
			}
			where := item.Slot
			if where == "" {
				where = "  -  "
			}
			content := item.Task.Content
			if strings.TrimSpace(content) == "" {
				content = "<empty>"
			}
			lines = append(lines, th.Text.Render(fmt.Sprintf("  %s  %s", where, content)))
		}
		lines = append(lines, "")
	}

	lines = append(lines, th.Header.Render("By tag"))
	for _, row := range result.ByTag {
		if row.Tasks == 0 {
			continue
		}
		lines = append(lines, th.Text.Render(fmt.Sprintf("  %-10s %d/%d  %s",
			row.Tag.Name, row.Completed, row.Tasks, timeutil.FormatMinutes(row.Minutes))))
	}
	return lines
}

func (m *Model) ensureBounds() {
	height := max(m.viewportHeight, 1)
	maxOffset := max(len(m.lines)-height, 0)
	m.offset = min(max(m.offset, 0), maxOffset)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
