// Package reminder decides whether a task or habit reminder is due.
//
// Every function here is pure: the caller passes the current time, so the
// rules can be exercised without a real clock.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/prodhub/internal/model"
)

// AutomaticInterval is the minimum gap between two automatic reminders.
const AutomaticInterval = 4 * time.Hour

// Rule identifies which reminder rule fired for an entity.
type Rule uint8

const (
	RuleNone Rule = iota
	RuleAutomatic
	RuleManual
	RuleDeadline
)

func (r Rule) String() string {
	switch r {
	case RuleAutomatic:
		return "automatic"
	case RuleManual:
		return "manual"
	case RuleDeadline:
		return "deadline"
	default:
		return "none"
	}
}

// IsAutomaticDue is true for automatic reminders that never fired or last
// fired at least AutomaticInterval ago. A zero lastSent means never.
func IsAutomaticDue(kind model.ReminderKind, lastSent, now time.Time) bool {
	if kind != model.ReminderAutomatic {
		return false
	}
	if lastSent.IsZero() {
		return true
	}
	return now.Sub(lastSent) >= AutomaticInterval
}

// IsManualDue is true during the exact minute named by reminderTime (HH:MM),
// at most once per local calendar day.
func IsManualDue(reminderTime string, lastSent, now time.Time) bool {
	hour, minute, err := ParseClock(reminderTime)
	if err != nil {
		return false
	}
	if now.Hour() != hour || now.Minute() != minute {
		return false
	}
	return !SentToday(lastSent, now)
}

// IsDeadlineDue is true once per day while the deadline (YYYY-MM-DD) is
// tomorrow, today, or already past.
func IsDeadlineDue(deadline string, lastSent, now time.Time) bool {
	days, ok := DaysUntil(deadline, now)
	if !ok || days > 1 {
		return false
	}
	return !SentToday(lastSent, now)
}

// SentToday compares calendar days in now's location, not elapsed time.
func SentToday(lastSent, now time.Time) bool {
	if lastSent.IsZero() {
		return false
	}
	return model.DateKey(lastSent.In(now.Location())) == model.DateKey(now)
}

// DaysUntil returns the number of calendar days from now's date to the
// deadline date. Negative values mean overdue.
func DaysUntil(deadline string, now time.Time) (int, bool) {
	deadline = strings.TrimSpace(deadline)
	if len(deadline) > len(model.DateLayout) {
		deadline = deadline[:len(model.DateLayout)]
	}
	due, err := time.Parse(model.DateLayout, deadline)
	if err != nil {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(due.Sub(today).Hours() / 24), true
}

// ParseClock parses an "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hour, err = strconv.Atoi(hs); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	if minute, err = strconv.Atoi(ms); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// FormatClock renders "HH:MM" as a 12-hour clock, e.g. "9:05 AM".
func FormatClock(s string) string {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return s
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}
