package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/prodhub/internal/config"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/reminder"
)

// NextAt computes the next digest time that falls on a configured workday
// and is not a holiday. An unparsable time falls back to 17:00.
func NextAt(now time.Time, cfg config.DigestConfig, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	hour, min := 17, 0
	if h, m, err := reminder.ParseClock(cfg.Time); err == nil {
		hour, min = h, m
	}

	workdays := map[string]bool{}
	for _, d := range cfg.Workdays {
		d = strings.TrimSpace(d)
		if len(d) >= 3 {
			workdays[strings.ToUpper(d[:1])+strings.ToLower(d[1:3])] = true
		}
	}
	holidays := map[string]bool{}
	for _, h := range cfg.Holidays {
		holidays[strings.TrimSpace(h)] = true
	}
	ok := func(t time.Time) bool {
		if len(workdays) > 0 && !workdays[t.Weekday().String()[:3]] {
			return false
		}
		return !holidays[t.Format(model.DateLayout)]
	}

	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	// a year of holidays is the most we look ahead
	for i := 0; i < 366; i++ {
		if ok(cand) {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// RunDaily calls f at every NextAt until ctx is canceled.
func RunDaily(ctx context.Context, cfg config.DigestConfig, clock Clock, f func()) {
	if clock == nil {
		clock = SystemClock{}
	}
	now := clock.Now()
	next := NextAt(now, cfg, now.Location())
	t := time.NewTimer(next.Sub(now))
	for {
		select {
		case <-ctx.Done():
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			return
		case <-t.C:
			f()
			now = clock.Now()
			next = NextAt(now, cfg, now.Location())
			t.Reset(next.Sub(now))
		}
	}
}

// StartDaily runs RunDaily in its own goroutine. The returned channel is
// closed once the loop has exited and any running f has returned.
func StartDaily(ctx context.Context, cfg config.DigestConfig, clock Clock, f func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunDaily(ctx, cfg, clock, f)
	}()
	return done
}

// Digest counts what is still open today: unfinished tasks and habits not
// yet checked off.
func Digest(habits []model.Habit, tasks []model.Task, now time.Time) (openTasks, habitsLeft int) {
	today := model.DateKey(now)
	for _, t := range tasks {
		if !t.Completed {
			openTasks++
		}
	}
	for _, h := range habits {
		if !h.CompletedOn(today) {
			habitsLeft++
		}
	}
	return openTasks, habitsLeft
}
