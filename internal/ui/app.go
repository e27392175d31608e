package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/prodhub/internal/app"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/pomodoro"
	"github.com/ramanasai/prodhub/internal/quote"
	"github.com/ramanasai/prodhub/internal/reminder"
	"github.com/ramanasai/prodhub/internal/utils"
)

type tab int

const (
	tabTasks tab = iota
	tabHabits
	tabTimer
	tabInbox
)

var tabNames = []string{"Tasks", "Habits", "Pomodoro", "Notifications"}

type mode int

const (
	modeNormal mode = iota
	modeAddTask
	modeAddHabit
	modeDeadline
	modeReminderTime
	modeHelp
)

// Ticker is the part of the reminder scheduler the TUI drives.
type Ticker interface {
	Tick() int
}

// Deps are the collaborators the TUI works on. Scheduler may be nil when a
// separate watch process owns reminders.
type Deps struct {
	State     *app.State
	Inbox     *notify.Inbox
	Countdown *pomodoro.Countdown
	Scheduler Ticker
	Quote     quote.Quote
	Location  *time.Location
	Log       *log.Logger
}

type Model struct {
	deps Deps
	loc  *time.Location
	now  time.Time

	width, height int
	tab           tab
	mode          mode
	cursor        [4]int
	status        string

	tasks   []model.Task
	habits  []model.Habit
	inbox   []model.Notification
	timer   pomodoro.TimerState
	preset  model.Preset
	presets []model.Preset
	today   int

	input textinput.Model
	st    style
}

type style struct {
	topBar     lipgloss.Style
	statusBar  lipgloss.Style
	tabActive  lipgloss.Style
	tabIdle    lipgloss.Style
	panel      lipgloss.Style
	quote      lipgloss.Style
	modalBox   lipgloss.Style
	modalTitle lipgloss.Style
	clock      lipgloss.Style
}

func New(d Deps) Model {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	in := textinput.New()
	in.CharLimit = 200
	in.Width = 50

	m := Model{
		deps:  d,
		loc:   loc,
		now:   time.Now().In(loc),
		input: in,
		st: style{
			topBar:     lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Bold(true).Padding(0, 1),
			statusBar:  lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Background(lipgloss.Color("#313244")).Padding(0, 1),
			tabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#89B4FA")).Padding(0, 1),
			tabIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Padding(0, 1),
			panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#585b70")).Padding(0, 1),
			quote:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#bac2de")).Padding(0, 1),
			modalBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#89B4FA")).Padding(1, 2).Width(64),
			modalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cdd6f4")),
			clock:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")).Padding(1, 4),
		},
	}
	m.refresh()
	return m
}

// Run opens the TUI and blocks until the user quits.
func Run(d Deps) error {
	p := tea.NewProgram(New(d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tickNow()
}

// ---------- messages & commands ----------

type tickMsg struct{ now time.Time }

func tickNow() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

// refresh pulls fresh copies of everything the views show.
func (m *Model) refresh() {
	m.habits, m.tasks = m.deps.State.Snapshot()
	if m.deps.Inbox != nil {
		m.inbox = m.deps.Inbox.List()
	}
	if m.deps.Countdown != nil {
		m.timer = m.deps.Countdown.State(m.now)
	}
	m.presets = m.deps.State.Presets()
	m.preset = m.deps.State.Preset(m.timer.ActivePresetID)
	m.today = m.deps.State.TodaysSessions(m.now)
	for i, n := range []int{len(m.tasks), len(m.habits), 0, len(m.inbox)} {
		if m.cursor[i] >= n {
			m.cursor[i] = max(0, n-1)
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = msg.now.In(m.loc)
		if m.deps.Countdown != nil {
			m.deps.Countdown.Tick(m.now)
		}
		if m.deps.Scheduler != nil {
			if n := m.deps.Scheduler.Tick(); n > 0 {
				m.status = fmt.Sprintf("%d reminder(s) sent", n)
			}
		}
		m.refresh()
		return m, tickNow()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAddTask, modeAddHabit, modeDeadline, modeReminderTime:
			return m.updateInput(msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		}
		return m.updateNormal(msg.String())
	}
	return m, nil
}

func (m Model) updateNormal(k string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch k {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % 4
		return m, nil
	case "shift+tab", "left", "h":
		m.tab = (m.tab + 3) % 4
		return m, nil
	case "1", "2", "3", "4":
		m.tab = tab(k[0] - '1')
		return m, nil
	case "j", "down":
		m.move(1)
		return m, nil
	case "k", "up":
		m.move(-1)
		return m, nil
	}

	switch m.tab {
	case tabTasks:
		return m.updateTasks(k)
	case tabHabits:
		return m.updateHabits(k)
	case tabTimer:
		return m.updateTimer(k)
	case tabInbox:
		return m.updateInbox(k)
	}
	return m, nil
}

func (m *Model) move(d int) {
	n := 0
	switch m.tab {
	case tabTasks:
		n = len(m.tasks)
	case tabHabits:
		n = len(m.habits)
	case tabInbox:
		n = len(m.inbox)
	}
	if n == 0 {
		return
	}
	m.cursor[m.tab] = min(n-1, max(0, m.cursor[m.tab]+d))
}

func (m Model) updateTasks(k string) (tea.Model, tea.Cmd) {
	var cur *model.Task
	if i := m.cursor[tabTasks]; i < len(m.tasks) {
		cur = &m.tasks[i]
	}
	switch k {
	case "a", "n":
		return m.openInput(modeAddTask, "What needs doing?", "")
	case " ", "x", "enter":
		if cur != nil {
			t, err := m.deps.State.ToggleTask(cur.ID, m.now)
			m.report(err, "Updated "+t.Title)
		}
	case "d", "delete":
		if cur != nil {
			m.report(m.deps.State.DeleteTask(cur.ID), "Deleted "+cur.Title)
		}
	case "D":
		if cur != nil {
			return m.openInput(modeDeadline, "Deadline (tomorrow, fri, in 3 days, 2025-01-31, empty clears)", cur.Deadline)
		}
	case "p":
		if cur != nil {
			_, err := m.deps.State.UpdateTask(cur.ID, func(t *model.Task) { t.Priority = nextPriority(t.Priority) })
			m.report(err, "")
		}
	case "r":
		if cur == nil {
			break
		}
		switch {
		case !cur.Active():
			_, err := m.deps.State.UpdateTask(cur.ID, func(t *model.Task) {
				t.Reminder = model.Reminder{Kind: model.ReminderAutomatic, Enabled: true, LastSent: t.LastSent}
			})
			m.report(err, "Reminder every 4h")
		case cur.Kind == model.ReminderAutomatic:
			return m.openInput(modeReminderTime, "Remind at (HH:MM)", cur.Time)
		default:
			_, err := m.deps.State.UpdateTask(cur.ID, func(t *model.Task) {
				t.Enabled = false
				t.Kind = model.ReminderNone
			})
			m.report(err, "Reminder off")
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) updateHabits(k string) (tea.Model, tea.Cmd) {
	var cur *model.Habit
	if i := m.cursor[tabHabits]; i < len(m.habits) {
		cur = &m.habits[i]
	}
	switch k {
	case "a", "n":
		return m.openInput(modeAddHabit, "New habit", "")
	case " ", "x", "enter":
		if cur != nil {
			h, err := m.deps.State.ToggleHabit(cur.ID, model.DateKey(m.now), m.now)
			m.report(err, fmt.Sprintf("%s: streak %d", h.Name, h.Streak))
		}
	case "d", "delete":
		if cur != nil {
			m.report(m.deps.State.DeleteHabit(cur.ID), "Deleted "+cur.Name)
		}
	case "r":
		if cur != nil {
			on := !cur.Active()
			_, err := m.deps.State.UpdateHabit(cur.ID, func(h *model.Habit) {
				h.Enabled = on
				h.Kind = model.ReminderNone
				if on {
					h.Kind = model.ReminderAutomatic
				}
			})
			m.report(err, map[bool]string{true: "Reminder every 4h", false: "Reminder off"}[on])
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) updateTimer(k string) (tea.Model, tea.Cmd) {
	c := m.deps.Countdown
	if c == nil {
		return m, nil
	}
	switch k {
	case " ", "enter":
		c.Toggle(m.now)
	case "r":
		c.Reset(m.now)
	case "s":
		if _, err := c.CycleSession(m.now); err != nil {
			m.status = err.Error()
		}
	case "p":
		if len(m.presets) > 0 {
			next := m.presets[0]
			for i, p := range m.presets {
				if p.ID == m.preset.ID {
					next = m.presets[(i+1)%len(m.presets)]
				}
			}
			if _, err := c.SelectPreset(next.ID, m.now); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Preset: " + next.Name
			}
		}
	}
	m.refresh()
	return m, nil
}

func (m Model) updateInbox(k string) (tea.Model, tea.Cmd) {
	if m.deps.Inbox == nil {
		return m, nil
	}
	switch k {
	case " ", "enter":
		if i := m.cursor[tabInbox]; i < len(m.inbox) {
			m.deps.Inbox.MarkRead(m.inbox[i].ID)
		}
	case "A":
		m.deps.Inbox.MarkAllRead()
		m.status = "All read"
	case "c":
		m.deps.Inbox.Clear()
		m.status = "Cleared"
	}
	m.refresh()
	return m, nil
}

func (m Model) openInput(md mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		val := strings.TrimSpace(m.input.Value())
		md := m.mode
		m.mode = modeNormal
		m.input.Blur()
		m.submit(md, val)
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit(md mode, val string) {
	switch md {
	case modeAddTask:
		if val != "" {
			t := m.deps.State.AddTask(model.Task{Title: val}, m.now)
			m.status = "Added " + t.Title
			m.cursor[tabTasks] = len(m.tasks)
		}
	case modeAddHabit:
		if val != "" {
			h := m.deps.State.AddHabit(model.Habit{Name: val}, m.now)
			m.status = "Added " + h.Name
			m.cursor[tabHabits] = len(m.habits)
		}
	case modeDeadline:
		cur := m.cursor[tabTasks]
		if cur >= len(m.tasks) {
			return
		}
		day := ""
		if val != "" {
			var err error
			if day, err = utils.ParseDeadline(val, m.now); err != nil {
				m.status = err.Error()
				return
			}
		}
		_, err := m.deps.State.UpdateTask(m.tasks[cur].ID, func(t *model.Task) { t.Deadline = day })
		m.report(err, "Deadline "+map[bool]string{true: "cleared", false: day}[day == ""])
	case modeReminderTime:
		cur := m.cursor[tabTasks]
		if cur >= len(m.tasks) {
			return
		}
		hhmm, err := utils.ParseClockInput(val)
		if err != nil {
			m.status = err.Error()
			return
		}
		_, err = m.deps.State.UpdateTask(m.tasks[cur].ID, func(t *model.Task) {
			t.Kind = model.ReminderManual
			t.Time = hhmm
			t.Enabled = true
		})
		m.report(err, "Reminder at "+reminder.FormatClock(hhmm))
	}
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.status = err.Error()
		if m.deps.Log != nil {
			m.deps.Log.Printf("[WARN] %s\n", err.Error())
		}
		return
	}
	m.status = ok
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityLow:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityHigh
	default:
		return model.PriorityLow
	}
}

// ---------- views ----------

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	top := m.renderTopBar()
	tabs := m.renderTabs()
	q := m.st.quote.Render(fmt.Sprintf("“%s” — %s", m.deps.Quote.Text, m.deps.Quote.Author))
	status := m.statusBar()

	innerH := m.height - lipgloss.Height(top) - lipgloss.Height(tabs) - lipgloss.Height(q) - lipgloss.Height(status) - 2
	innerH = max(innerH, 5)

	var body string
	switch m.tab {
	case tabTasks:
		body = m.renderTasks(innerH)
	case tabHabits:
		body = m.renderHabits(innerH)
	case tabTimer:
		body = m.renderTimer()
	case tabInbox:
		body = m.renderInbox(innerH)
	}
	panel := m.st.panel.Width(max(20, m.width-2)).Height(innerH).Render(body)
	ui := lipgloss.JoinVertical(lipgloss.Left, top, tabs, panel, q, status)

	switch m.mode {
	case modeAddTask:
		ui = overlayCenter(ui, m.modal("Add task", m.input.View()+"\n\nEnter to save, Esc to cancel"))
	case modeAddHabit:
		ui = overlayCenter(ui, m.modal("Add habit", m.input.View()+"\n\nEnter to save, Esc to cancel"))
	case modeDeadline:
		ui = overlayCenter(ui, m.modal("Deadline", m.input.View()+"\n\nEnter to save, Esc to cancel"))
	case modeReminderTime:
		ui = overlayCenter(ui, m.modal("Manual reminder", m.input.View()+"\n\nFires once a day at this time"))
	case modeHelp:
		ui = overlayCenter(ui, m.modal("Keys", helpText))
	}
	return ui
}

const helpText = `tab / 1-4    switch view        j/k  move
Tasks        a add  space done  d delete  D deadline
             p priority  r reminder (off → 4h → time → off)
Habits       a add  space check today  d delete  r reminder
Pomodoro     space start/pause  r reset  s session  p preset
Inbox        space read  A read all  c clear
q quit       ? this help`

func (m Model) renderTopBar() string {
	pomo := ""
	if m.timer.IsRunning {
		pomo = fmt.Sprintf(" | 🍅 %s %s", strings.ToUpper(m.timer.SessionType.Label()), pomodoro.FormatRemaining(m.timer.TimeLeft))
	}
	unread := 0
	for _, n := range m.inbox {
		if !n.Read {
			unread++
		}
	}
	bell := ""
	if unread > 0 {
		bell = fmt.Sprintf(" | 🔔 %d", unread)
	}
	title := fmt.Sprintf("prodhub%s%s  |  %s", pomo, bell, m.now.Format("Mon Jan 02 03:04 PM"))
	return m.st.topBar.Render(title)
}

func (m Model) renderTabs() string {
	var parts []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts = append(parts, m.st.tabActive.Render(label))
		} else {
			parts = append(parts, m.st.tabIdle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) statusBar() string {
	hints := "? help • tab switch • q quit"
	if m.status != "" {
		hints = m.status
	}
	return m.st.statusBar.Width(max(0, m.width)).Render(hints)
}

func (m Model) renderTasks(h int) string {
	if len(m.tasks) == 0 {
		return DefaultTheme.Hint.Render("No tasks yet. Press a to add one.")
	}
	th := DefaultTheme
	var lines []string
	for i, t := range m.tasks {
		box := "○"
		title := t.Title
		if t.Completed {
			box = th.Success.Render("✓")
			title = th.Done.Render(title)
		}
		line := fmt.Sprintf("%s %s  %s", box, title, th.Label.Render(string(t.Priority)))
		if t.Deadline != "" {
			if days, ok := reminder.DaysUntil(t.Deadline, m.now); ok {
				due := "due " + utils.DescribeDays(days)
				if !t.Completed && days <= 1 {
					due = th.Warning.Render(due)
				}
				line += "  " + due
			}
		}
		if s := utils.ReminderSummary(t.Reminder); s != "" {
			line += "  " + th.Reminder.Render("⏰ "+s)
		}
		if i == m.cursor[tabTasks] {
			line = th.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return window(lines, m.cursor[tabTasks], h)
}

func (m Model) renderHabits(h int) string {
	if len(m.habits) == 0 {
		return DefaultTheme.Hint.Render("No habits yet. Press a to add one.")
	}
	th := DefaultTheme
	today := model.DateKey(m.now)
	var lines []string
	for i, hb := range m.habits {
		box := "○"
		if hb.CompletedOn(today) {
			box = th.Success.Render("✓")
		}
		streak := model.CurrentStreak(hb.CompletedDates, m.now)
		line := fmt.Sprintf("%s %s  %s", box, hb.Name, th.Value.Render(fmt.Sprintf("🔥 %d  best %d", streak, max(streak, hb.BestStreak))))
		if s := utils.ReminderSummary(hb.Reminder); s != "" {
			line += "  " + th.Reminder.Render("⏰ "+s)
		}
		if i == m.cursor[tabHabits] {
			line = th.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return window(lines, m.cursor[tabHabits], h)
}

func (m Model) renderTimer() string {
	th := DefaultTheme
	state := "paused"
	if m.timer.IsRunning {
		state = "running"
	}
	progress := pomodoro.Progress(m.timer, m.preset)
	barW := 40
	filled := int(progress * float64(barW))
	bar := th.Success.Render(strings.Repeat("█", filled)) + th.Hint.Render(strings.Repeat("░", barW-filled))

	return lipgloss.JoinVertical(lipgloss.Left,
		th.Title.Render(strings.ToUpper(m.timer.SessionType.Label())),
		m.st.clock.Render(pomodoro.FormatRemaining(m.timer.TimeLeft)),
		bar,
		"",
		th.Label.Render("state   ")+state,
		th.Label.Render("preset  ")+fmt.Sprintf("%s (%d/%d/%d min)", m.preset.Name, m.preset.WorkDuration, m.preset.ShortBreakDuration, m.preset.LongBreakDuration),
		th.Label.Render("today   ")+fmt.Sprintf("%d session(s), next long break after %d", m.today, pomodoro.LongBreakEvery-m.today%pomodoro.LongBreakEvery),
	)
}

func (m Model) renderInbox(h int) string {
	if len(m.inbox) == 0 {
		return DefaultTheme.Hint.Render("Nothing here.")
	}
	th := DefaultTheme
	var lines []string
	for i, n := range m.inbox {
		mark := " "
		if !n.Read {
			mark = th.Warning.Render("•")
		}
		line := fmt.Sprintf("%s %s  %s  %s", mark, th.Title.Render(n.Title), n.Message, th.Hint.Render(notify.FormatAge(n.Timestamp, m.now)))
		if i == m.cursor[tabInbox] {
			line = th.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return window(lines, m.cursor[tabInbox], h)
}

// window keeps the cursor line visible in h rows.
func window(lines []string, cursor, h int) string {
	if len(lines) <= h {
		return strings.Join(lines, "\n")
	}
	start := max(0, min(cursor-h/2, len(lines)-h))
	return strings.Join(lines[start:start+h], "\n")
}

func (m Model) modal(title, content string) string {
	box := lipgloss.JoinVertical(lipgloss.Left,
		m.st.modalTitle.Render(title),
		"",
		content,
	)
	return m.st.modalBox.Render(box)
}

func overlayCenter(base, modal string) string {
	// naive center overlay using vertical join with blank lines
	baseH := lipgloss.Height(base)
	mh := lipgloss.Height(modal)
	topPad := max(0, (baseH-mh)/3)
	return lipgloss.JoinVertical(lipgloss.Left, strings.Repeat("\n", topPad), lipgloss.PlaceHorizontal(lipgloss.Width(base), lipgloss.Center, modal), "")
}
