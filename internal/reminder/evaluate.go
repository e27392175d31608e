package reminder

import (
	"time"

	"github.com/ramanasai/prodhub/internal/model"
)

// EvaluateTask returns the first rule due for t, checked in the order
// automatic, manual, deadline. Completed tasks never fire.
func EvaluateTask(t model.Task, now time.Time) Rule {
	if t.Completed || !t.Active() {
		return RuleNone
	}
	last := t.LastSentAt()

	switch t.Kind {
	case model.ReminderAutomatic:
		if IsAutomaticDue(t.Kind, last, now) {
			return RuleAutomatic
		}
	case model.ReminderManual:
		if IsManualDue(t.Time, last, now) {
			return RuleManual
		}
	case model.ReminderNone:
		return RuleNone
	}

	if t.Deadline != "" && IsDeadlineDue(t.Deadline, last, now) {
		return RuleDeadline
	}
	return RuleNone
}

// EvaluateHabit only knows the automatic rule; habits have no deadline and
// manual times on habits are informational.
func EvaluateHabit(h model.Habit, now time.Time) Rule {
	if !h.Active() {
		return RuleNone
	}
	switch h.Kind {
	case model.ReminderAutomatic:
		if IsAutomaticDue(h.Kind, h.LastSentAt(), now) {
			return RuleAutomatic
		}
	case model.ReminderManual, model.ReminderNone:
	}
	return RuleNone
}
