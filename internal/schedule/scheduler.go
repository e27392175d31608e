// Package schedule runs the periodic jobs: the once-a-minute reminder pass
// and the daily digest.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/reminder"
)

// Clock is injected so tests can drive the scheduler without real time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Loc (time.Local when nil).
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now()
	}
	return time.Now().In(c.Loc)
}

// Store gives the scheduler a fresh copy of the reminder-bearing entities and
// takes back the ones whose lastReminderSent changed.
type Store interface {
	Snapshot() ([]model.Habit, []model.Task)
	UpdateReminders(habits []model.Habit, tasks []model.Task)
}

// Sink receives in-app notifications.
type Sink interface {
	Add(model.Notification)
}

// Notifier is the best-effort OS channel.
type Notifier interface {
	Send(title, message string)
}

const noMinute = -1

type Scheduler struct {
	store    Store
	inbox    Sink
	desktop  Notifier
	clock    Clock
	interval time.Duration
	log      *log.Logger

	mu         sync.Mutex
	lastMinute int
	cancel     context.CancelFunc
	done       chan struct{}
}

// New builds a stopped scheduler. desktop and l may be nil.
func New(store Store, inbox Sink, desktop Notifier, clock Clock, l *log.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		store:      store,
		inbox:      inbox,
		desktop:    desktop,
		clock:      clock,
		interval:   time.Second,
		log:        l,
		lastMinute: noMinute,
	}
}

// SetInterval changes the tick period used by Start. Non-positive values are
// ignored.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.mu.Lock()
		s.interval = d
		s.mu.Unlock()
	}
}

// Tick runs one evaluation pass unless one already ran in the current
// minute. It returns the number of reminders fired.
func (s *Scheduler) Tick() int {
	now := s.clock.Now()
	minute := now.Hour()*60 + now.Minute()

	s.mu.Lock()
	if minute == s.lastMinute {
		s.mu.Unlock()
		return 0
	}
	s.lastMinute = minute
	s.mu.Unlock()

	return s.Check(now)
}

// Check evaluates every habit and open task against now, emits the due
// reminders and writes back the entities that fired.
func (s *Scheduler) Check(now time.Time) int {
	habits, tasks := s.store.Snapshot()
	fired := 0
	stamp := now.UnixMilli()

	var changedHabits []model.Habit
	for _, h := range habits {
		if reminder.EvaluateHabit(h, now) == reminder.RuleNone {
			continue
		}
		s.emit(notify.HabitReminder(h.Name, now))
		h.LastSent = stamp
		changedHabits = append(changedHabits, h)
		fired++
	}

	var changedTasks []model.Task
	for _, t := range tasks {
		var n model.Notification
		switch rule := reminder.EvaluateTask(t, now); rule {
		case reminder.RuleAutomatic, reminder.RuleManual:
			n = notify.TaskReminder(t.Title, now)
		case reminder.RuleDeadline:
			n = notify.DeadlineReminder(t.Title, now)
		default:
			continue
		}
		s.emit(n)
		t.LastSent = stamp
		changedTasks = append(changedTasks, t)
		fired++
	}

	if fired > 0 {
		s.store.UpdateReminders(changedHabits, changedTasks)
		s.logf("[INFO] Sent %d reminder(s) at %s\n", fired, now.Format("15:04"))
	}
	return fired
}

func (s *Scheduler) emit(n model.Notification) {
	if s.inbox != nil {
		s.inbox.Add(n)
	}
	if s.desktop != nil {
		s.desktop.Send(n.Title, n.Message)
	}
}

// Start ticks in a background goroutine until ctx is done or Stop is called.
// The first pass happens immediately. Calling Start on a running scheduler
// does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	interval := s.interval
	s.mu.Unlock()

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()

		s.Tick()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Tick()
			}
		}
	}()
	s.logf("[DEBUG] Scheduler started, tick every %s\n", interval)
}

// Stop halts the ticker and forgets the last evaluated minute so the next
// Start evaluates right away. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
		s.logf("[DEBUG] Scheduler stopped\n")
	}

	s.mu.Lock()
	s.lastMinute = noMinute
	s.mu.Unlock()
}

// Running reports whether the background ticker is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}
