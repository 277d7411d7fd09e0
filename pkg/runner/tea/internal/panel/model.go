package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
)

// Model renders a boxed overlay with a title and wrapped body lines. The
// help screen and the discard confirmation both use it.
type Model struct {
	title      string
	lines      []string
	width      int
	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
}

// New returns a panel that wraps its body at width columns, 0 for no limit.
func New(width int) Model {
	return Model{
		width: width,
		frameStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2),
		titleStyle: lipgloss.NewStyle().Bold(true),
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines ...string) {
	m.title = title
	m.lines = lines
}

// SetWidth changes the wrap width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Empty reports whether there is nothing to show.
func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	if m.Empty() {
		return "", 0
	}
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	for _, line := range m.lines {
		if m.width > 0 {
			line = wordwrap.String(line, m.width)
		}
		content = append(content, line)
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	return view, strings.Count(view, "\n") + 1
}
