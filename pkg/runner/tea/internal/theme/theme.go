package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/timebox/pkg/tag"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer  FooterTheme
	Planner PlannerTheme
	Report  ReportTheme
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Status              lipgloss.Style
	Filter              lipgloss.Style
	Timer               lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
	CommandSelectedDesc lipgloss.Style
}

// PlannerTheme styles the day panes.
type PlannerTheme struct {
	Title     lipgloss.Style
	Pane      lipgloss.Style
	PaneFocus lipgloss.Style
	Heading   lipgloss.Style
	SlotTime  lipgloss.Style
	SlotHour  lipgloss.Style
	Cursor    lipgloss.Style
	Done      lipgloss.Style
	Faint     lipgloss.Style
	Dirty     lipgloss.Style
	Carrying  lipgloss.Style
}

// ReportTheme styles the report overlay.
type ReportTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Text   lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	commandName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	commandDesc := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:                lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:              lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Filter:              lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
			Timer:               lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			CommandName:         commandName,
			CommandDescription:  commandDesc,
			CommandSelectedName: commandName.Reverse(true),
			CommandSelectedDesc: commandDesc.Reverse(true),
		},
		Planner: PlannerTheme{
			Title:     lipgloss.NewStyle().Bold(true).Underline(true),
			Pane:      pane,
			PaneFocus: pane.BorderForeground(lipgloss.Color("212")),
			Heading:   lipgloss.NewStyle().Bold(true),
			SlotTime:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			SlotHour:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Done:      lipgloss.NewStyle().Strikethrough(true).Faint(true),
			Faint:     lipgloss.NewStyle().Faint(true).Italic(true),
			Dirty:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Carrying:  lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		},
		Report: ReportTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Padding(0, 1),
			Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Text:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		},
	}
}

// Chip renders a tag label on its own color, picking black or white text
// for contrast.
func Chip(t tag.Tag) string {
	bg, err := colorful.Hex(t.Color)
	if err != nil {
		return "#" + t.Name
	}
	fg := lipgloss.Color("#ffffff")
	if _, _, l := bg.Hcl(); l > 0.6 {
		fg = lipgloss.Color("#000000")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(t.Color)).
		Foreground(fg).
		Padding(0, 1).
		Render(t.Name)
}
