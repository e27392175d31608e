package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ramanasai/prodhub/internal/config"
	"github.com/ramanasai/prodhub/internal/model"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type fakeStore struct {
	mu      sync.Mutex
	habits  []model.Habit
	tasks   []model.Task
	updates int
}

func (s *fakeStore) Snapshot() ([]model.Habit, []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Habit(nil), s.habits...), append([]model.Task(nil), s.tasks...)
}

func (s *fakeStore) UpdateReminders(habits []model.Habit, tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	for _, h := range habits {
		for i := range s.habits {
			if s.habits[i].ID == h.ID {
				s.habits[i].LastSent = h.LastSent
			}
		}
	}
	for _, t := range tasks {
		for i := range s.tasks {
			if s.tasks[i].ID == t.ID {
				s.tasks[i].LastSent = t.LastSent
			}
		}
	}
}

type recorder struct {
	mu    sync.Mutex
	items []model.Notification
	sent  []string
}

func (r *recorder) Add(n model.Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

func (r *recorder) Send(title, message string) {
	r.mu.Lock()
	r.sent = append(r.sent, message)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func auto() model.Reminder {
	return model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}
}

func TestTickOncePerMinute(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 14, 9, 0, 5, 0, time.Local)}
	store := &fakeStore{
		habits: []model.Habit{{ID: "h1", Name: "Read", Reminder: auto()}},
		tasks: []model.Task{
			{ID: "t1", Title: "Ship", Reminder: model.Reminder{Kind: model.ReminderManual, Time: "09:00", Enabled: true}},
			{ID: "t2", Title: "Done already", Completed: true, Reminder: auto()},
			{ID: "t3", Title: "Quiet"},
		},
	}
	rec := &recorder{}
	s := New(store, rec, rec, clock, nil)

	if n := s.Tick(); n != 2 {
		t.Fatalf("expected 2 reminders on first tick, got %d", n)
	}
	clock.Set(clock.Now().Add(30 * time.Second))
	if n := s.Tick(); n != 0 {
		t.Errorf("second tick in the same minute must not fire, got %d", n)
	}
	if rec.count() != 2 || len(rec.sent) != 2 {
		t.Errorf("expected 2 in-app and 2 desktop notifications, got %d/%d", rec.count(), len(rec.sent))
	}

	// next minute: the habit is inside its 4h window, the manual time passed
	clock.Set(time.Date(2024, 5, 14, 9, 1, 0, 0, time.Local))
	if n := s.Tick(); n != 0 {
		t.Errorf("nothing should be due at 09:01, got %d", n)
	}
	if store.updates != 1 {
		t.Errorf("expected exactly one write-back, got %d", store.updates)
	}
}

func TestCheckMessages(t *testing.T) {
	now := time.Date(2024, 5, 14, 10, 0, 0, 0, time.Local)
	store := &fakeStore{
		habits: []model.Habit{{ID: "h", Name: "Stretch", Reminder: auto()}},
		tasks: []model.Task{{
			ID:       "t",
			Title:    "Report",
			Deadline: "2024-05-15",
			Reminder: model.Reminder{Kind: model.ReminderManual, Time: "08:00", Enabled: true},
		}},
	}
	rec := &recorder{}
	New(store, rec, nil, &fakeClock{now: now}, nil).Check(now)

	want := []string{"Time to complete: Stretch", "Don't forget: Deadline: Report"}
	if len(rec.items) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(rec.items))
	}
	for i, w := range want {
		if rec.items[i].Message != w {
			t.Errorf("notification %d: expected %q, got %q", i, w, rec.items[i].Message)
		}
		if rec.items[i].Kind != model.KindReminder {
			t.Errorf("notification %d should be a reminder, got %s", i, rec.items[i].Kind)
		}
	}
	if store.tasks[0].LastSent != now.UnixMilli() || store.habits[0].LastSent != now.UnixMilli() {
		t.Error("lastReminderSent must be stamped with now")
	}
}

func TestCheckNoChangeNoWrite(t *testing.T) {
	now := time.Date(2024, 5, 14, 10, 0, 0, 0, time.Local)
	store := &fakeStore{tasks: []model.Task{{ID: "t", Title: "Later", Deadline: "2024-06-01", Reminder: auto()}}}
	store.tasks[0].LastSent = now.Add(-time.Hour).UnixMilli()

	New(store, &recorder{}, nil, &fakeClock{now: now}, nil).Check(now)
	if store.updates != 0 {
		t.Errorf("no reminder fired, expected no write-back, got %d", store.updates)
	}
}

func TestStopResetsMinute(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)}
	store := &fakeStore{habits: []model.Habit{{ID: "h", Name: "Water", Reminder: auto()}}}
	rec := &recorder{}
	s := New(store, rec, nil, clock, nil)
	s.SetInterval(10 * time.Millisecond)

	s.Start(context.Background())
	s.Start(context.Background()) // no second goroutine
	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Fatal("scheduler should be stopped")
	}
	if rec.count() != 1 {
		t.Fatalf("expected one reminder while running, got %d", rec.count())
	}

	// same minute, but Stop cleared the marker so a manual tick evaluates again
	store.mu.Lock()
	store.habits[0].LastSent = 0
	store.mu.Unlock()
	if n := s.Tick(); n != 1 {
		t.Errorf("tick after stop should re-evaluate, got %d", n)
	}
}

func TestNextAt(t *testing.T) {
	cfg := config.DigestConfig{
		Time:     "17:00",
		Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		Holidays: []string{"2024-05-15"},
	}
	loc := time.UTC
	type testCase struct {
		name   string
		now    time.Time
		expect time.Time
	}
	var cases = []testCase{
		{"later today", time.Date(2024, 5, 14, 9, 0, 0, 0, loc), time.Date(2024, 5, 14, 17, 0, 0, 0, loc)},
		{"skips holiday", time.Date(2024, 5, 14, 18, 0, 0, 0, loc), time.Date(2024, 5, 16, 17, 0, 0, 0, loc)},
		{"skips weekend", time.Date(2024, 5, 17, 17, 0, 0, 0, loc), time.Date(2024, 5, 20, 17, 0, 0, 0, loc)},
	}
	for _, c := range cases {
		if got := NextAt(c.now, cfg, loc); !got.Equal(c.expect) {
			t.Errorf("%s: expected %s, got %s", c.name, c.expect, got)
		}
	}
}

func TestStartDailyWaitsForJob(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 14, 16, 59, 59, 950_000_000, time.UTC)}
	cfg := config.DigestConfig{Enabled: true, Time: "17:00"}

	started := make(chan struct{})
	var once sync.Once
	var mu sync.Mutex
	finished := false

	ctx, cancel := context.WithCancel(context.Background())
	done := StartDaily(ctx, cfg, clock, func() {
		once.Do(func() { close(started) })
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		finished = true
		mu.Unlock()
	})

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("digest job never ran")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after cancel")
	}
	mu.Lock()
	defer mu.Unlock()
	if !finished {
		t.Error("done closed while the job was still running")
	}
}

func TestDigest(t *testing.T) {
	now := time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)
	habits := []model.Habit{
		{ID: "a", CompletedDates: []string{"2024-05-14"}},
		{ID: "b", CompletedDates: []string{"2024-05-13"}},
	}
	tasks := []model.Task{{ID: "x"}, {ID: "y", Completed: true}, {ID: "z"}}
	open, left := Digest(habits, tasks, now)
	if open != 2 || left != 1 {
		t.Errorf("expected 2 open tasks and 1 habit left, got %d and %d", open, left)
	}
}
