package teaui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/timebox/pkg/app"
	"tableflip.dev/timebox/pkg/filter"
	"tableflip.dev/timebox/pkg/i18n"
	"tableflip.dev/timebox/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/timebox/pkg/runner/tea/internal/panel"
	"tableflip.dev/timebox/pkg/runner/tea/internal/theme"
	reportview "tableflip.dev/timebox/pkg/runner/tea/internal/views/report"
	"tableflip.dev/timebox/pkg/schedule"
	"tableflip.dev/timebox/pkg/session"
	"tableflip.dev/timebox/pkg/store"
	"tableflip.dev/timebox/pkg/task"
	"tableflip.dev/timebox/pkg/timer"
	"tableflip.dev/timebox/pkg/timeutil"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
	modeConfirm
	modeReport
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionEdit
	actionDuration
)

type pane int

const (
	paneNotes pane = iota
	paneSchedule
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	ddWindow      = 600 * time.Millisecond
	// Changes seen on disk this soon after our own save are our own.
	ownSaveWindow = 2 * time.Second
)

const normalHelp = "o add · m pick/drop · x done · s focus · 1-9 tag · : commands · ? help"

var commandOptions = []bottombar.CommandOption{
	{Name: "w", Description: "save the day"},
	{Name: "q", Description: "quit, asking about unsaved changes"},
	{Name: "wq", Description: "save and quit"},
	{Name: "q!", Description: "quit without saving"},
	{Name: "date", Description: "open a day, YYYY-MM-DD or today"},
	{Name: "filter", Description: "show only tasks with these tags, none to clear"},
	{Name: "prio", Description: "set priority N to text"},
	{Name: "reload", Description: "reload the day from disk"},
	{Name: "report", Description: "completed tasks over a window, e.g. 3d or 1w"},
}

// Clock feeds the focus timer from Bubble Tea ticks. The timer arms it on
// Start; the model turns the armed generation into a tea.Tick.
type Clock struct {
	pending uint64
	armed   bool
}

// NewClock returns an idle clock.
func NewClock() *Clock { return &Clock{} }

// Start arms a tick for gen.
func (c *Clock) Start(gen uint64) {
	c.pending, c.armed = gen, true
}

// Stop disarms the clock. Ticks already scheduled carry a stale generation.
func (c *Clock) Stop() {
	c.armed = false
}

func (c *Clock) take() (uint64, bool) {
	gen, ok := c.pending, c.armed
	c.armed = false
	return gen, ok
}

// messages
type tickMsg struct{ gen uint64 }
type storeEventMsg struct {
	event store.Event
	ok    bool
}

type row struct {
	slot string
	task *task.Task
}

// Option configures the model.
type Option func(*Model)

// WithLanguage sets the UI strings.
func WithLanguage(lang i18n.Strings) Option {
	return func(m *Model) {
		if lang.Code != "" {
			m.lang = lang
		}
	}
}

// WithEvents makes the model react to changes on disk.
func WithEvents(events <-chan store.Event) Option {
	return func(m *Model) { m.events = events }
}

// Model contains UI state
type Model struct {
	svc    *app.Service
	ctx    context.Context
	clock  *Clock
	lang   i18n.Strings
	theme  theme.Theme
	events <-chan store.Event

	mode   mode
	action action
	focus  pane

	noteCursor int
	slotCursor int
	selection  filter.Selection
	carrying   schedule.DragPayload

	input   textinput.Model
	footer  bottombar.Model
	overlay panel.Model
	report  *reportview.Model
	confirm func(*Model) tea.Cmd
	status  string

	awaitingDD bool
	lastDTime  time.Time
	lastSave   time.Time
	quitting   bool

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Service.
func New(ctx context.Context, svc *app.Service, clock *Clock, opts ...Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if clock == nil {
		clock = NewClock()
	}
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	th := theme.Default()
	m := Model{
		svc:        svc,
		ctx:        ctx,
		clock:      clock,
		lang:       i18n.Lookup("en"),
		theme:      th,
		mode:       modeNormal,
		focus:      paneNotes,
		input:      ti,
		footer:     bottombar.New(th.Footer),
		overlay:    panel.New(60),
		report:     reportview.New(th),
		termWidth:  defaultWidth,
		termHeight: defaultHeight,
	}
	m.footer.SetCommandDefinitions(commandOptions)
	m.footer.SetHelp(normalHelp)
	m.slotCursor = m.rowForSlot("09:00")
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts listening for changes on disk.
func (m Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		return storeEventMsg{event: ev, ok: ok}
	}
}

func tick(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.overlay.SetWidth(min(60, max(msg.Width-8, 20)))
		m.report.SetViewport(msg.Width, msg.Height-4)
	case tickMsg:
		m.handleTick(msg, &cmds)
	case storeEventMsg:
		if !msg.ok {
			m.events = nil
			break
		}
		m.handleStoreEvent(msg.event)
		cmds = append(cmds, m.waitForEvent())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			switch msg.String() {
			case "q", "esc", "?", "enter":
				m.setMode(modeNormal)
			}
		case modeConfirm:
			switch msg.String() {
			case "y", "Y":
				run := m.confirm
				m.confirm = nil
				m.setMode(modeNormal)
				if run != nil {
					cmds = append(cmds, run(&m))
				}
			case "n", "N", "esc", "q":
				m.confirm = nil
				m.setMode(modeNormal)
				m.status = "Cancelled"
			}
		case modeReport:
			m.updateReport(msg)
		case modeInsert:
			m.updateInsert(msg, &cmds)
		case modeCommand:
			m.updateCommand(msg, &cmds)
		case modeNormal:
			m.updateNormal(msg, &cmds)
		}
	}

	m.syncFooter()
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInsert(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		switch m.action {
		case actionAdd:
			if t, err := m.svc.AddNote(input); err != nil {
				m.fail(err)
			} else {
				m.focus = paneNotes
				m.noteCursor = m.noteIndex(t.ID)
				m.status = "Added"
			}
		case actionEdit:
			if t := m.currentTask(); t != nil {
				if _, err := m.svc.Edit(t.ID, input); err != nil {
					m.fail(err)
				} else {
					m.status = "Edited"
				}
			}
		case actionDuration:
			if t := m.currentTask(); t != nil {
				minutes, err := timeutil.ParseMinutes(input)
				if err == nil {
					_, err = m.svc.SetDuration(t.ID, minutes)
				}
				if err != nil {
					m.fail(err)
				} else {
					m.status = "Duration set"
				}
			}
		}
		m.leaveInput()
	case "esc":
		m.leaveInput()
		m.status = "Cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) updateReport(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "j", "down":
		m.report.ScrollLines(1)
	case "k", "up":
		m.report.ScrollLines(-1)
	case "pgdown", "ctrl+f", "space":
		m.report.ScrollPages(1)
	case "pgup", "ctrl+b":
		m.report.ScrollPages(-1)
	case "g", "home":
		m.report.ScrollHome()
	case "G", "end":
		m.report.ScrollEnd()
	case "q", "esc", "enter":
		m.report.Clear()
		m.setMode(modeNormal)
	}
}

func (m *Model) updateCommand(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.input.Value())
		m.leaveInput()
		if cmd := m.runCommand(input); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	case "esc":
		m.leaveInput()
		m.status = "Command cancelled"
	case "tab":
		if name, ok := m.footer.Complete(); ok {
			m.input.SetValue(name + " ")
			m.input.CursorEnd()
			m.footer.UpdateCommandInput(m.input.Value(), m.input.View())
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		*cmds = append(*cmds, cmd)
		m.footer.UpdateCommandInput(m.input.Value(), m.input.View())
	}
}

func (m *Model) updateNormal(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	key := msg.String()
	if key != "d" {
		m.awaitingDD = false
	}
	switch key {
	case ":":
		m.enterInput(modeCommand, actionNone, "", cmds)
		m.footer.UpdateCommandInput("", m.input.View())
	case "?":
		m.overlay.SetContent("Keys", helpLines()...)
		m.setMode(modeHelp)

	// panes and movement
	case "tab", "h", "l", "left", "right":
		if m.focus == paneNotes {
			m.focus = paneSchedule
		} else {
			m.focus = paneNotes
		}
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g":
		m.moveCursor(-len(m.rows()) - len(m.notes()))
	case "G":
		m.moveCursor(len(m.rows()) + len(m.notes()))

	// tasks
	case "o", "O":
		m.enterInput(modeInsert, actionAdd, m.lang.Notes.AddNote, cmds)
	case "i":
		if t := m.currentTask(); t != nil {
			m.enterInput(modeInsert, actionEdit, "Edit", cmds)
			m.input.SetValue(t.Content)
			m.input.CursorEnd()
		}
	case "D":
		if t := m.currentTask(); t != nil {
			m.enterInput(modeInsert, actionDuration, "Minutes, e.g. 45 or 1h30m", cmds)
			if t.Duration != nil {
				m.input.SetValue(strconv.Itoa(*t.Duration))
				m.input.CursorEnd()
			}
		}
	case "x":
		if t := m.currentTask(); t != nil {
			if _, err := m.svc.Complete(t.ID); err != nil {
				m.fail(err)
			} else {
				m.status = "Completed"
			}
		}
	case "d":
		t := m.currentTask()
		if t == nil || m.focus != paneNotes {
			break
		}
		if m.awaitingDD && time.Since(m.lastDTime) < ddWindow {
			if err := m.svc.DeleteNote(t.ID); err != nil {
				m.fail(err)
			} else {
				m.status = "Deleted"
				m.clampCursors()
			}
			m.awaitingDD = false
		} else {
			m.awaitingDD = true
			m.lastDTime = time.Now()
		}
	case "m", "enter":
		m.pickOrDrop()
	case "esc":
		if m.carrying != nil {
			m.carrying = nil
			m.status = "Drop cancelled"
		}
	case "u":
		if t := m.currentTask(); t != nil && m.focus == paneSchedule {
			if err := m.svc.Unschedule(t.ID); err != nil {
				m.fail(err)
			} else {
				m.status = "Unscheduled"
				m.clampCursors()
			}
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.toggleTag(key)

	// focus timer
	case "s":
		m.startFocus(cmds)
	case "space", " ":
		m.pauseResume(cmds)
	case "S":
		m.timerAction("Stopped", m.svc.Timer().Stop, cmds)
	case "R":
		m.timerAction(m.lang.Pomodoro.Reset, m.svc.Timer().Reset, cmds)

	// days
	case "[":
		m.shiftDate(-1, cmds)
	case "]":
		m.shiftDate(1, cmds)
	case "ctrl+s":
		m.save()
	case "q":
		m.status = "Use :q to quit"
	}
}

func (m *Model) runCommand(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "w", "write":
		m.save()
	case "q", "quit", "exit":
		return m.guard(quit)
	case "q!":
		return quit(m)
	case "wq", "x":
		if m.save() {
			return quit(m)
		}
	case "date":
		if len(args) != 1 {
			m.status = "usage: :date YYYY-MM-DD"
			return nil
		}
		date := args[0]
		if date == "today" {
			date = session.Today()
		}
		if _, err := session.ParseDateKey(date); err != nil {
			m.fail(err)
			return nil
		}
		return m.openDate(date)
	case "filter":
		sel, err := m.svc.Selection(args...)
		if err != nil {
			m.fail(err)
			return nil
		}
		m.selection = sel
		m.clampCursors()
	case "prio":
		if len(args) < 1 {
			m.status = "usage: :prio N text"
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err == nil {
			err = m.svc.SetPriority(n, strings.Join(args[1:], " "))
		}
		if err != nil {
			m.fail(err)
		} else {
			m.status = "Priority set"
		}
	case "reload":
		return m.guard(func(m *Model) tea.Cmd {
			m.svc.Forget(m.svc.Date())
			if err := m.svc.Open(m.ctx, m.svc.Date()); err != nil {
				m.fail(err)
			} else {
				m.status = "Reloaded"
			}
			m.clampCursors()
			return nil
		})
	case "report":
		m.openReport(args...)
	default:
		m.status = fmt.Sprintf("Unknown command: %s", input)
	}
	return nil
}

func (m *Model) openReport(args ...string) {
	window := timeutil.DefaultWindow
	if len(args) > 0 {
		window = args[0]
	}
	d, label, err := timeutil.ParseWindow(window)
	if err != nil {
		m.fail(err)
		return
	}
	until := time.Now()
	result, err := m.svc.Report(m.ctx, until.Add(-d), until)
	if err != nil {
		m.fail(err)
		return
	}
	m.report.SetData(label, result)
	m.report.SetViewport(m.termWidth, m.termHeight-4)
	m.setMode(modeReport)
}

// guard runs fn now, or after confirmation when there are unsaved changes.
func (m *Model) guard(fn func(*Model) tea.Cmd) tea.Cmd {
	if !m.svc.Dirty() {
		return fn(m)
	}
	m.confirm = fn
	m.overlay.SetContent(m.lang.Discard, "y / n")
	m.setMode(modeConfirm)
	return nil
}

func quit(m *Model) tea.Cmd {
	m.quitting = true
	return tea.Quit
}

func (m *Model) openDate(date string) tea.Cmd {
	return m.guard(func(m *Model) tea.Cmd {
		// A load failure still opens an empty day.
		if err := m.svc.Open(m.ctx, date); err != nil {
			m.fail(err)
		} else {
			m.status = "Opened " + date
		}
		m.carrying = nil
		m.noteCursor = 0
		m.clampCursors()
		return nil
	})
}

func (m *Model) shiftDate(days int, cmds *[]tea.Cmd) {
	at, err := session.ParseDateKey(m.svc.Date())
	if err != nil {
		m.fail(err)
		return
	}
	if cmd := m.openDate(session.DateKey(at.AddDate(0, 0, days))); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) save() bool {
	if err := m.svc.Save(m.ctx); err != nil {
		m.fail(err)
		return false
	}
	m.lastSave = time.Now()
	m.status = m.lang.Saved
	return true
}

func (m *Model) pickOrDrop() {
	if m.carrying == nil {
		t := m.currentTask()
		if t == nil {
			return
		}
		if m.focus == paneNotes {
			m.carrying = schedule.NoteDrag{Task: t}
		} else {
			m.carrying = schedule.SlotDrag{Task: t, Source: m.currentSlot()}
		}
		m.focus = paneSchedule
		m.status = "Carrying " + t.Content
		return
	}
	if m.focus != paneSchedule {
		m.status = "Drop onto a slot"
		return
	}
	target := m.currentSlot()
	if err := m.svc.Day().Drop(m.carrying, target); err != nil {
		m.fail(err)
		return
	}
	m.carrying = nil
	m.status = "Scheduled at " + target
	m.clampCursors()
}

func (m *Model) toggleTag(key string) {
	t := m.currentTask()
	if t == nil {
		return
	}
	n, _ := strconv.Atoi(key)
	all := m.svc.Tags.All()
	if n < 1 || n > len(all) {
		m.status = fmt.Sprintf("No tag %d", n)
		return
	}
	if _, err := m.svc.ToggleTag(t.ID, all[n-1].ID); err != nil {
		m.fail(err)
		return
	}
	m.status = "Tagged " + all[n-1].Name
	m.clampCursors()
}

func (m *Model) startFocus(cmds *[]tea.Cmd) {
	t := m.currentTask()
	if t == nil {
		m.status = "Select a task to focus on"
		return
	}
	tm := m.svc.Timer()
	if tm.State() != timer.Idle {
		// Switching tasks mid-run changes what Stop completes.
		if err := m.svc.Select(t.ID); err != nil {
			m.fail(err)
			return
		}
		m.status = "Focus moved to " + t.Content
		return
	}
	m.timerAction(m.lang.Pomodoro.Start, func() error { return m.svc.Focus(t.ID) }, cmds)
}

func (m *Model) pauseResume(cmds *[]tea.Cmd) {
	tm := m.svc.Timer()
	switch tm.State() {
	case timer.Running:
		m.timerAction(m.lang.Pomodoro.Pause, tm.Pause, cmds)
	case timer.Paused:
		m.timerAction(m.lang.Pomodoro.Resume, tm.Resume, cmds)
	default:
		m.status = "Timer is not running"
	}
}

func (m *Model) timerAction(label string, fn func() error, cmds *[]tea.Cmd) {
	if err := fn(); err != nil {
		m.fail(err)
		return
	}
	m.status = label
	if gen, ok := m.clock.take(); ok {
		*cmds = append(*cmds, tick(gen))
	}
}

func (m *Model) handleTick(msg tickMsg, cmds *[]tea.Cmd) {
	tm := m.svc.Timer()
	selected := tm.Selected()
	if tm.Tick(msg.gen) {
		if selected != nil {
			m.status = "Time's up: " + selected.Content
		}
		return
	}
	if msg.gen == tm.Generation() && tm.State() == timer.Running {
		*cmds = append(*cmds, tick(msg.gen))
	}
}

func (m *Model) handleStoreEvent(ev store.Event) {
	open := m.svc.Date()
	if ev.Type == store.EventDayChanged && ev.Date != open {
		m.svc.Forget(ev.Date)
		return
	}
	if time.Since(m.lastSave) < ownSaveWindow {
		return
	}
	reloaded, err := m.svc.Refresh(m.ctx)
	switch {
	case err != nil:
		m.fail(err)
	case reloaded:
		m.status = "Reloaded, changed on disk"
		m.clampCursors()
	default:
		m.status = "Changed on disk, keeping unsaved changes"
	}
}

func (m *Model) enterInput(md mode, act action, placeholder string, cmds *[]tea.Cmd) {
	m.setMode(md)
	m.action = act
	m.input.Reset()
	m.input.Placeholder = placeholder
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) leaveInput() {
	m.setMode(modeNormal)
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) setMode(md mode) {
	m.mode = md
	switch md {
	case modeCommand:
		m.footer.SetMode(bottombar.ModeCommand)
	case modeInsert:
		m.footer.SetMode(bottombar.ModeInsert)
	case modeHelp, modeReport:
		m.footer.SetMode(bottombar.ModeHelp)
	case modeConfirm:
		m.footer.SetMode(bottombar.ModeConfirm)
	default:
		m.footer.SetMode(bottombar.ModeNormal)
		m.overlay.Reset()
	}
}

func (m *Model) fail(err error) {
	m.status = "ERR: " + err.Error()
}

func (m *Model) syncFooter() {
	m.footer.SetStatus(m.status)
	if m.selection.Empty() {
		m.footer.SetFilter("")
	} else {
		names := make([]string, 0)
		for _, tg := range m.selection.Tags() {
			names = append(names, tg.Name)
		}
		m.footer.SetFilter("filter: " + strings.Join(names, ", "))
	}
	tm := m.svc.Timer()
	switch tm.State() {
	case timer.Running:
		m.footer.SetTimer("▶ " + timer.Format(tm.Remaining()))
	case timer.Paused:
		m.footer.SetTimer("⏸ " + timer.Format(tm.Remaining()))
	default:
		m.footer.SetTimer("")
	}
}

// view data

func (m Model) view() filter.View {
	return m.svc.View(m.selection)
}

func (m Model) notes() []*task.Task {
	return m.view().Notes
}

// rows flattens the schedule: one row per task, one row per empty slot.
func (m Model) rows() []row {
	var out []row
	for _, sl := range m.view().Slots {
		if len(sl.Tasks) == 0 {
			out = append(out, row{slot: sl.Time})
			continue
		}
		for _, t := range sl.Tasks {
			out = append(out, row{slot: sl.Time, task: t})
		}
	}
	return out
}

func (m Model) rowForSlot(at string) int {
	if m.svc == nil {
		return 0
	}
	for i, r := range m.rows() {
		if r.slot == at {
			return i
		}
	}
	return 0
}

func (m Model) noteIndex(id string) int {
	for i, t := range m.notes() {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func (m Model) currentTask() *task.Task {
	if m.focus == paneNotes {
		notes := m.notes()
		if m.noteCursor < 0 || m.noteCursor >= len(notes) {
			return nil
		}
		return notes[m.noteCursor]
	}
	rows := m.rows()
	if m.slotCursor < 0 || m.slotCursor >= len(rows) {
		return nil
	}
	return rows[m.slotCursor].task
}

func (m Model) currentSlot() string {
	rows := m.rows()
	if m.slotCursor < 0 || m.slotCursor >= len(rows) {
		return ""
	}
	return rows[m.slotCursor].slot
}

func (m *Model) moveCursor(delta int) {
	if m.focus == paneNotes {
		m.noteCursor += delta
	} else {
		m.slotCursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.noteCursor = clamp(m.noteCursor, 0, len(m.notes())-1)
	m.slotCursor = clamp(m.slotCursor, 0, len(m.rows())-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// View renders the day, optional overlays and the footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	th := m.theme.Planner
	footer, footerHeight := m.footer.View()
	footer = fitWidth(footer, m.termWidth)

	header := m.headerView()
	bodyHeight := max(m.termHeight-lipgloss.Height(header)-footerHeight-1, 5)
	innerHeight := bodyHeight - 2

	notesWidth := clamp(m.termWidth/3, 24, 48)
	slotsWidth := max(m.termWidth-notesWidth-4, 30)

	notesStyle, slotsStyle := th.Pane, th.PaneFocus
	if m.focus == paneNotes {
		notesStyle, slotsStyle = th.PaneFocus, th.Pane
	}
	notes := notesStyle.Width(notesWidth).Height(innerHeight).
		Render(m.notesView(notesWidth-2, innerHeight))
	slots := slotsStyle.Width(slotsWidth).Height(innerHeight).
		Render(m.scheduleView(slotsWidth-2, innerHeight))
	body := lipgloss.JoinHorizontal(lipgloss.Top, notes, slots)

	switch m.mode {
	case modeInsert:
		prompt := "Add: "
		switch m.action {
		case actionEdit:
			prompt = "Edit: "
		case actionDuration:
			prompt = "Duration: "
		}
		body += "\n" + prompt + m.input.View()
	case modeReport:
		body = m.report.View()
	case modeHelp, modeConfirm:
		overlay, _ := m.overlay.View()
		body = lipgloss.JoinVertical(lipgloss.Left, body, overlay)
	}
	return header + "\n" + body + "\n" + footer
}

func (m Model) headerView() string {
	th := m.theme.Planner
	title := th.Title.Render(fmt.Sprintf("%s · %s", m.lang.Title, m.svc.Date()))
	state := ""
	switch {
	case m.svc.Dirty():
		state = th.Dirty.Render("● " + m.lang.Unsaved)
	case !m.svc.SavedAt().IsZero():
		state = th.Faint.Render(m.lang.Saved)
	}

	var prios []string
	for i, p := range m.svc.Day().Priorities() {
		if strings.TrimSpace(p) == "" {
			p = th.Faint.Render("-")
		}
		prios = append(prios, fmt.Sprintf("%d. %s", i+1, p))
	}
	line2 := th.Heading.Render(m.lang.Priorities.Title+": ") + strings.Join(prios, "   ")

	var chips []string
	for i, tg := range m.svc.Tags.All() {
		chip := theme.Chip(tg)
		if !m.selection.Empty() && !m.selection.Has(tg.ID) {
			chip = th.Faint.Render(tg.Name)
		}
		chips = append(chips, fmt.Sprintf("%d %s", i+1, chip))
	}
	line1 := title + "  " + state
	if m.carrying != nil {
		line1 += "  " + th.Carrying.Render("⇢ drop with m")
	}
	return lipgloss.JoinVertical(lipgloss.Left, line1, line2, strings.Join(chips, "  "))
}

func (m Model) notesView(width, height int) string {
	th := m.theme.Planner
	notes := m.notes()
	lines := []string{th.Heading.Render(fmt.Sprintf("%s (%d)", m.lang.Notes.Notes, len(notes)))}
	if len(notes) == 0 {
		lines = append(lines, th.Faint.Render("none, press o to add"))
	}
	start := window(m.noteCursor, len(notes), height-1)
	for i := start; i < len(notes) && len(lines) < height; i++ {
		line := m.taskLine(notes[i], width)
		if m.focus == paneNotes && i == m.noteCursor {
			line = th.Cursor.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) scheduleView(width, height int) string {
	th := m.theme.Planner
	rows := m.rows()
	lines := []string{th.Heading.Render(m.lang.Schedule)}
	start := window(m.slotCursor, len(rows), height-1)
	prev := ""
	if start > 0 {
		prev = rows[start-1].slot
	}
	for i := start; i < len(rows) && len(lines) < height; i++ {
		r := rows[i]
		at := "     "
		if r.slot != prev {
			at = th.SlotTime.Render(r.slot)
			if strings.HasSuffix(r.slot, ":00") {
				at = th.SlotHour.Render(r.slot)
			}
		}
		prev = r.slot
		text := ""
		if r.task != nil {
			text = m.taskLine(r.task, width-6)
		}
		line := at + " " + text
		if m.focus == paneSchedule && i == m.slotCursor {
			line = th.Cursor.Render(at + " " + text + strings.Repeat(" ", max(width-6-lipgloss.Width(text), 0)))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) taskLine(t *task.Task, width int) string {
	th := m.theme.Planner
	mark := "•"
	content := t.Content
	if t.Completed {
		mark = "✔"
	}
	var suffix []string
	for _, tg := range t.Tags {
		suffix = append(suffix, theme.Chip(tg))
	}
	if mins := t.Minutes(); mins > 0 {
		suffix = append(suffix, th.Faint.Render(timeutil.FormatMinutes(mins)))
	}
	if sel := m.svc.Timer().Selected(); sel != nil && sel.ID == t.ID && m.svc.Timer().State() != timer.Idle {
		mark = "▶"
	}
	tail := strings.Join(suffix, " ")
	room := max(width-2-lipgloss.Width(tail)-1, 8)
	content = truncate.StringWithTail(content, uint(room), "…")
	if t.Completed {
		content = th.Done.Render(content)
	}
	line := mark + " " + content
	if tail != "" {
		line += " " + tail
	}
	return line
}

func fitWidth(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = truncate.StringWithTail(l, uint(max(width, 1)), "…")
	}
	return strings.Join(lines, "\n")
}

// window returns the first visible index so cursor stays on screen.
func window(cursor, total, height int) int {
	if height <= 0 || total <= height {
		return 0
	}
	return clamp(cursor-height/2, 0, total-height)
}

func helpLines() []string {
	return []string{
		"tab switch panes · j/k move · g/G top/bottom",
		"o add note · i edit · D duration · x complete · dd delete note",
		"m pick up a task, move to a slot, m again to drop · u unschedule · esc cancel",
		"1-9 toggle tag on task · :filter work health to filter, :filter to clear",
		"s focus on task · space pause/resume · S stop and complete · R reset",
		"[ ] previous/next day · ctrl+s or :w save · :q quit · :date YYYY-MM-DD",
		":report 1w shows completed tasks, j/k scroll, esc closes",
	}
}
