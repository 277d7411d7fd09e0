package bottombar

import (
	"strings"

	"tableflip.dev/timebox/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeHelp
	ModeConfirm
)

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	helpLine        string
	statusLine      string
	filterLine      string
	timerLine       string
	styles          theme.FooterTheme
	commandInput    string
	commandView     string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	maxSuggestions  int
}

// New returns a footer model drawn with styles.
func New(styles theme.FooterTheme) Model {
	return Model{
		mode:           ModeNormal,
		styles:         styles,
		maxSuggestions: 6,
	}
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeCommand {
		m.filteredOptions = nil
		m.commandInput = ""
		m.commandView = ""
	}
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// SetFilter shows the active tag filter; empty hides it.
func (m *Model) SetFilter(filter string) {
	m.filterLine = filter
}

// SetTimer shows the focus countdown; empty hides it.
func (m *Model) SetTimer(timer string) {
	m.timerLine = timer
}

// Mode returns the current mode.
func (m Model) Mode() Mode {
	return m.mode
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateCommandInput refreshes the command palette filter and rendered line.
func (m *Model) UpdateCommandInput(value string, view string) {
	m.commandInput = value
	m.commandView = ":" + view
	m.filterSuggestions(value)
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	switch m.mode {
	case ModeCommand:
		lines := len(m.filteredOptions)
		if lines > m.maxSuggestions {
			lines = m.maxSuggestions
		}
		// Include command input line.
		return lines + 1
	default:
		return 1
	}
}

// Complete returns the command the palette would pick for the typed prefix:
// the highlighted first suggestion.
func (m Model) Complete() (string, bool) {
	if m.mode != ModeCommand || len(m.filteredOptions) == 0 {
		return "", false
	}
	return m.filteredOptions[0].Name, true
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	switch m.mode {
	case ModeCommand:
		return m.renderCommandMode()
	default:
		return m.renderStatusLine(), 1
	}
}

func (m Model) renderStatusLine() string {
	var segments []string
	if m.timerLine != "" {
		segments = append(segments, m.styles.Timer.Render(m.timerLine))
	}
	if m.filterLine != "" {
		segments = append(segments, m.styles.Filter.Render(m.filterLine))
	}
	if m.statusLine != "" {
		segments = append(segments, m.styles.Status.Render(m.statusLine))
	}
	if m.helpLine != "" {
		segments = append(segments, m.styles.Help.Render(m.helpLine))
	}
	if len(segments) == 0 {
		return " "
	}
	return strings.Join(segments, " │ ")
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	if len(m.filteredOptions) == 0 && m.statusLine != "" {
		lines = append(lines, m.styles.Status.Render(m.statusLine))
	} else {
		limit := m.maxSuggestions
		if limit <= 0 {
			limit = len(m.filteredOptions)
		}
		if limit > len(m.filteredOptions) {
			limit = len(m.filteredOptions)
		}
		for i := 0; i < limit; i++ {
			opt := m.filteredOptions[i]
			nameStyle, descStyle := m.styles.CommandName, m.styles.CommandDescription
			if i == 0 && strings.TrimSpace(m.commandInput) != "" {
				nameStyle, descStyle = m.styles.CommandSelectedName, m.styles.CommandSelectedDesc
			}
			name := nameStyle.Render(":" + opt.Name)
			desc := descStyle.Render(opt.Description)
			if opt.Description == "" {
				lines = append(lines, name)
			} else {
				lines = append(lines, name+"  "+desc)
			}
		}
	}
	commandLine := m.commandView
	if commandLine == "" {
		commandLine = ":"
	}
	lines = append(lines, commandLine)
	return strings.Join(lines, "\n"), len(lines)
}

func (m *Model) filterSuggestions(prefix string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		m.filteredOptions = append([]CommandOption(nil), m.commandOptions...)
		return
	}
	if len(m.filteredOptions) > 0 {
		m.filteredOptions = m.filteredOptions[:0]
	} else {
		m.filteredOptions = make([]CommandOption, 0, len(m.commandOptions))
	}
	for _, opt := range m.commandOptions {
		if strings.HasPrefix(strings.ToLower(opt.Name), strings.ToLower(prefix)) {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
}
