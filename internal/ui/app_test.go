package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ramanasai/prodhub/internal/app"
	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/pomodoro"
	"github.com/ramanasai/prodhub/internal/quote"
)

type countingTicker struct{ n int }

func (c *countingTicker) Tick() int { c.n++; return 0 }

func newTestModel() (Model, *app.State, *countingTicker) {
	kv := db.NewMemory()
	state := app.Load(kv, model.Preset{WorkDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 15}, nil)
	inbox := notify.NewInbox(kv, nil)
	ticker := &countingTicker{}
	m := New(Deps{
		State:     state,
		Inbox:     inbox,
		Countdown: pomodoro.NewCountdown(kv, state, pomodoro.Options{Inbox: inbox}),
		Scheduler: ticker,
		Quote:     quote.Fallback,
		Location:  time.UTC,
	})
	return m, state, ticker
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddAndCompleteTask(t *testing.T) {
	m, state, _ := newTestModel()

	m = press(m, "a", "Buy milk", "enter")
	_, tasks := state.Snapshot()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Fatalf("task not added: %+v", tasks)
	}

	m = press(m, "x")
	_, tasks = state.Snapshot()
	if !tasks[0].Completed {
		t.Error("x should complete the selected task")
	}

	m = press(m, "r")
	_, tasks = state.Snapshot()
	if tasks[0].Kind != model.ReminderAutomatic || !tasks[0].Enabled {
		t.Errorf("first r should enable the 4h reminder, got %+v", tasks[0].Reminder)
	}
	m = press(m, "r", "9:30", "enter")
	_, tasks = state.Snapshot()
	if tasks[0].Kind != model.ReminderManual || tasks[0].Time != "09:30" {
		t.Errorf("second r should set a manual time, got %+v", tasks[0].Reminder)
	}
	if m.mode != modeNormal {
		t.Error("enter should close the input")
	}
}

func TestTickDrivesSchedulerAndTimer(t *testing.T) {
	m, state, ticker := newTestModel()
	m.width, m.height = 100, 30

	m = press(m, "3", "space")
	if !m.timer.IsRunning {
		t.Fatal("space on the pomodoro view should start the timer")
	}

	next, cmd := m.Update(tickMsg{now: time.Now().Add(26 * time.Minute)})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if ticker.n != 1 {
		t.Errorf("scheduler should tick once, got %d", ticker.n)
	}
	if m.timer.SessionType != model.SessionShortBreak {
		t.Errorf("expected a short break after the work session, got %s", m.timer.SessionType)
	}
	if state.TodaysSessions(m.now) != 1 {
		t.Error("completed session not recorded")
	}
	if !strings.Contains(m.View(), "SHORT BREAK") {
		t.Error("top bar should show the running session")
	}
}
