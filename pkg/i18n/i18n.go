// Package i18n holds the planner's user-facing strings.
package i18n

import (
	"golang.org/x/text/language"
)

// Strings is one language's table.
type Strings struct {
	Code     string
	Name     string
	Title    string
	Save     string
	Saved    string
	Unsaved  string
	Language string
	Schedule string
	Discard  string

	Priorities PrioritiesStrings
	Notes      NotesStrings
	Pomodoro   PomodoroStrings
}

type PrioritiesStrings struct {
	Title       string
	AddPriority string
	Add         string
}

type NotesStrings struct {
	Notes   string
	AddNote string
	Add     string
}

type PomodoroStrings struct {
	Start  string
	Pause  string
	Resume string
	Stop   string
	Reset  string
}

var tables = []Strings{
	{
		Code:     "en",
		Name:     "English",
		Title:    "Timebox",
		Save:     "Save",
		Saved:    "saved",
		Unsaved:  "unsaved changes",
		Language: "Language",
		Schedule: "Schedule",
		Discard:  "You have unsaved changes. Discard them?",
		Priorities: PrioritiesStrings{
			Title:       "Priorities",
			AddPriority: "Add priority",
			Add:         "Add",
		},
		Notes: NotesStrings{
			Notes:   "Notes",
			AddNote: "Add a note",
			Add:     "Add",
		},
		Pomodoro: PomodoroStrings{
			Start:  "Start",
			Pause:  "Pause",
			Resume: "Resume",
			Stop:   "Stop",
			Reset:  "Reset",
		},
	},
	{
		Code:     "de",
		Name:     "Deutsch",
		Title:    "Zeitbox",
		Save:     "Speichern",
		Saved:    "gespeichert",
		Unsaved:  "ungespeicherte Änderungen",
		Language: "Sprache",
		Schedule: "Zeitplan",
		Discard:  "Es gibt ungespeicherte Änderungen. Verwerfen?",
		Priorities: PrioritiesStrings{
			Title:       "Prioritäten",
			AddPriority: "Priorität hinzufügen",
			Add:         "Hinzufügen",
		},
		Notes: NotesStrings{
			Notes:   "Notizen",
			AddNote: "Notiz hinzufügen",
			Add:     "Hinzufügen",
		},
		Pomodoro: PomodoroStrings{
			Start:  "Start",
			Pause:  "Pause",
			Resume: "Fortsetzen",
			Stop:   "Stopp",
			Reset:  "Zurücksetzen",
		},
	},
	{
		Code:     "sr",
		Name:     "Српски",
		Title:    "Временски оквир",
		Save:     "Сачувај",
		Saved:    "сачувано",
		Unsaved:  "несачуване измене",
		Language: "Језик",
		Schedule: "Распоред",
		Discard:  "Имате несачуване измене. Одбацити их?",
		Priorities: PrioritiesStrings{
			Title:       "Приоритети",
			AddPriority: "Додај приоритет",
			Add:         "Додај",
		},
		Notes: NotesStrings{
			Notes:   "Белешке",
			AddNote: "Додај белешку",
			Add:     "Додај",
		},
		Pomodoro: PomodoroStrings{
			Start:  "Почни",
			Pause:  "Пауза",
			Resume: "Настави",
			Stop:   "Заустави",
			Reset:  "Ресетуј",
		},
	},
}

var matcher = language.NewMatcher([]language.Tag{
	language.English, // first entry is the fallback
	language.German,
	language.Serbian,
})

// Lookup returns the table best matching code, e.g. "de", "de-AT" or
// "sr-RS". Anything unrecognized gets English.
func Lookup(code string) Strings {
	tag, err := language.Parse(code)
	if err != nil {
		return tables[0]
	}
	_, i, conf := matcher.Match(tag)
	if conf == language.No {
		return tables[0]
	}
	return tables[i]
}

// Supported lists the available tables in menu order.
func Supported() []Strings {
	out := make([]Strings, len(tables))
	copy(out, tables)
	return out
}
