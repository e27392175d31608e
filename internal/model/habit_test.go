package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)

	type testCase struct {
		dates  []string
		expect int
	}

	var cases = []testCase{
		{dates: nil, expect: 0},
		{dates: []string{"2024-03-09"}, expect: 0},
		{dates: []string{"2024-03-10"}, expect: 1},
		{dates: []string{"2024-03-08", "2024-03-09", "2024-03-10"}, expect: 3},
		{dates: []string{"2024-03-07", "2024-03-09", "2024-03-10"}, expect: 2},
	}

	for idx, c := range cases {
		if got := CurrentStreak(c.dates, now); got != c.expect {
			t.Errorf("case %02d: expected streak %d, got %d", idx, c.expect, got)
		}
	}
}

func TestHabitToggle(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	h := Habit{Name: "Read", CompletedDates: []string{"2024-03-09"}}

	h.Toggle("2024-03-10", now)
	if h.Streak != 2 || h.BestStreak != 2 {
		t.Fatalf("expected streak 2/2 after marking today, got %d/%d", h.Streak, h.BestStreak)
	}

	h.Toggle("2024-03-10", now)
	if h.CompletedOn("2024-03-10") {
		t.Error("today should be unmarked after second toggle")
	}
	if h.Streak != 0 || h.BestStreak != 2 {
		t.Errorf("expected streak 0 and best 2, got %d/%d", h.Streak, h.BestStreak)
	}
}

func TestTaskJSONShape(t *testing.T) {
	task := Task{
		ID:       "t1",
		Title:    "Ship it",
		Priority: PriorityHigh,
		Reminder: Reminder{Kind: ReminderManual, Time: "09:30", Enabled: true},
	}

	raw, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"reminderType":"manual"`, `"reminderTime":"09:30"`, `"reminderEnabled":true`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}
	if strings.Contains(string(raw), "lastReminderSent") {
		t.Errorf("unsent reminder should omit lastReminderSent: %s", raw)
	}

	var back Task
	if err := json.Unmarshal([]byte(`{"id":"x","reminderType":"bogus","reminderEnabled":true}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Kind != ReminderNone || back.Active() {
		t.Errorf("unknown reminder type should decode as inactive none, got %v", back.Kind)
	}
}

func TestTodaysSessionCount(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.Local)
	sessions := []Session{
		{Date: "2024-03-10", Completed: true},
		{Date: "2024-03-10", Completed: false},
		{Date: "2024-03-09", Completed: true},
		{Date: "2024-03-10", Completed: true},
	}
	if n := TodaysSessionCount(sessions, now); n != 2 {
		t.Errorf("expected 2 sessions today, got %d", n)
	}
}
