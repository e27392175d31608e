package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-day key used for deadlines, habit marks and sessions.
const DateLayout = "2006-01-02"

// ReminderKind selects which rule decides when a reminder fires.
type ReminderKind uint8

const (
	ReminderNone ReminderKind = iota
	ReminderAutomatic
	ReminderManual
)

func (k ReminderKind) String() string {
	switch k {
	case ReminderAutomatic:
		return "automatic"
	case ReminderManual:
		return "manual"
	default:
		return "none"
	}
}

// ParseReminderKind accepts the persisted names; anything unknown is none.
func ParseReminderKind(s string) (ReminderKind, error) {
	switch s {
	case "automatic", "auto":
		return ReminderAutomatic, nil
	case "manual":
		return ReminderManual, nil
	case "none", "":
		return ReminderNone, nil
	}
	return ReminderNone, fmt.Errorf("unknown reminder type %q", s)
}

func (k ReminderKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ReminderKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	kind, err := ParseReminderKind(s)
	if err != nil {
		// older records may carry values we no longer know; treat as off
		kind = ReminderNone
	}
	*k = kind
	return nil
}

func (k ReminderKind) MarshalYAML() (any, error) { return k.String(), nil }

// Reminder holds the reminder settings shared by tasks and habits.
// LastSent is epoch milliseconds, zero when nothing was sent yet.
type Reminder struct {
	Kind     ReminderKind `json:"reminderType,omitempty" yaml:"reminderType,omitempty"`
	Time     string       `json:"reminderTime,omitempty" yaml:"reminderTime,omitempty"`
	Enabled  bool         `json:"reminderEnabled,omitempty" yaml:"reminderEnabled,omitempty"`
	LastSent int64        `json:"lastReminderSent,omitempty" yaml:"lastReminderSent,omitempty"`
}

// Active reports whether the reminder takes part in evaluation at all.
func (r Reminder) Active() bool {
	return r.Enabled && r.Kind != ReminderNone
}

// LastSentAt returns the last firing time, or the zero time.
func (r Reminder) LastSentAt() time.Time {
	if r.LastSent == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.LastSent)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Completed   bool     `json:"completed" yaml:"completed"`
	CreatedAt   int64    `json:"createdAt" yaml:"createdAt"`
	CompletedAt int64    `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Deadline    string   `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Reminder    `yaml:",inline"`
}

type Habit struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Frequency      string   `json:"frequency" yaml:"frequency"`
	CreatedAt      int64    `json:"createdAt" yaml:"createdAt"`
	CompletedDates []string `json:"completedDates" yaml:"completedDates"`
	Streak         int      `json:"streak" yaml:"streak"`
	BestStreak     int      `json:"bestStreak" yaml:"bestStreak"`
	Reminder       `yaml:",inline"`
}

// Session is one completed pomodoro work session.
type Session struct {
	ID        string `json:"id" yaml:"id"`
	Date      string `json:"date" yaml:"date"`
	Duration  int    `json:"duration" yaml:"duration"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Preset durations are in minutes.
type Preset struct {
	ID                 string `json:"id" yaml:"id"`
	Name               string `json:"name" yaml:"name"`
	WorkDuration       int    `json:"workDuration" yaml:"workDuration"`
	ShortBreakDuration int    `json:"shortBreakDuration" yaml:"shortBreakDuration"`
	LongBreakDuration  int    `json:"longBreakDuration" yaml:"longBreakDuration"`
	IsDefault          bool   `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
}

// AppState is the persisted application record.
type AppState struct {
	Tasks            []Task    `json:"tasks" yaml:"tasks"`
	Habits           []Habit   `json:"habits" yaml:"habits"`
	PomodoroSessions []Session `json:"pomodoroSessions" yaml:"pomodoroSessions"`
	PomodoroPresets  []Preset  `json:"pomodoroPresets" yaml:"pomodoroPresets"`
}

// Clone returns a deep copy so callers can never alias the owner's slices.
func (s AppState) Clone() AppState {
	out := AppState{
		Tasks:            append([]Task(nil), s.Tasks...),
		Habits:           make([]Habit, len(s.Habits)),
		PomodoroSessions: append([]Session(nil), s.PomodoroSessions...),
		PomodoroPresets:  append([]Preset(nil), s.PomodoroPresets...),
	}
	for i, h := range s.Habits {
		h.CompletedDates = append([]string(nil), h.CompletedDates...)
		out.Habits[i] = h
	}
	return out
}

type NotificationKind string

const (
	KindInfo     NotificationKind = "info"
	KindSuccess  NotificationKind = "success"
	KindWarning  NotificationKind = "warning"
	KindReminder NotificationKind = "reminder"
)

type Notification struct {
	ID        string           `json:"id" yaml:"id"`
	Title     string           `json:"title" yaml:"title"`
	Message   string           `json:"message" yaml:"message"`
	Kind      NotificationKind `json:"type" yaml:"type"`
	Timestamp int64            `json:"timestamp" yaml:"timestamp"`
	Read      bool             `json:"read" yaml:"read"`
}

// SessionKind is the phase of the pomodoro countdown.
type SessionKind string

const (
	SessionWork       SessionKind = "work"
	SessionShortBreak SessionKind = "break"
	SessionLongBreak  SessionKind = "longbreak"
)

func (k SessionKind) Label() string {
	switch k {
	case SessionShortBreak:
		return "short break"
	case SessionLongBreak:
		return "long break"
	default:
		return "work session"
	}
}

// Next is the manual cycling order used while the timer is stopped.
func (k SessionKind) Next() SessionKind {
	switch k {
	case SessionWork:
		return SessionShortBreak
	case SessionShortBreak:
		return SessionLongBreak
	default:
		return SessionWork
	}
}

// Minutes returns the preset duration for a session kind.
func (p Preset) Minutes(k SessionKind) int {
	switch k {
	case SessionShortBreak:
		return p.ShortBreakDuration
	case SessionLongBreak:
		return p.LongBreakDuration
	default:
		return p.WorkDuration
	}
}

// DateKey formats t as a local calendar day in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
