package model

import (
	"slices"
	"time"
)

// CompletedOn reports whether the habit carries a mark for the given day.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// Toggle flips the completion mark for day and refreshes the streaks.
func (h *Habit) Toggle(day string, now time.Time) {
	if i := slices.Index(h.CompletedDates, day); i >= 0 {
		h.CompletedDates = slices.Delete(h.CompletedDates, i, i+1)
	} else {
		h.CompletedDates = append(h.CompletedDates, day)
	}
	h.Streak = CurrentStreak(h.CompletedDates, now)
	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
}

// CurrentStreak counts consecutive marked days ending today.
// An unmarked today yields zero.
func CurrentStreak(dates []string, now time.Time) int {
	marked := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		marked[d] = struct{}{}
	}
	streak := 0
	day := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	for {
		if _, ok := marked[DateKey(day)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// TodaysSessionCount counts completed sessions recorded on now's day.
func TodaysSessionCount(sessions []Session, now time.Time) int {
	today := DateKey(now)
	n := 0
	for _, s := range sessions {
		if s.Date == today && s.Completed {
			n++
		}
	}
	return n
}
