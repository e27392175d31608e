// Package app owns the persisted application record: tasks, habits,
// pomodoro sessions and presets.
//
// Every operation re-reads the stored record before acting so that the
// scheduler, the timer and separate CLI invocations always work on fresh
// data. Storage failures are logged and otherwise ignored; the in-memory
// copy stays authoritative for the running process.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
)

var (
	ErrNotFound  = errors.New("no such item")
	ErrAmbiguous = errors.New("id prefix matches more than one item")
)

// DefaultPresetID is the id of the preset created when none exist.
const DefaultPresetID = "default"

type State struct {
	kv       db.KV
	log      *log.Logger
	fallback model.Preset

	mu   sync.Mutex
	data model.AppState
}

// Load reads the app record from kv. A missing or malformed record yields an
// empty state. fallback is the preset used when the user has none.
func Load(kv db.KV, fallback model.Preset, l *log.Logger) *State {
	if fallback.ID == "" {
		fallback.ID = DefaultPresetID
	}
	if fallback.Name == "" {
		fallback.Name = "default"
	}
	fallback.IsDefault = true

	s := &State{kv: kv, log: l, fallback: fallback}
	s.mu.Lock()
	s.reload()
	s.mu.Unlock()
	return s
}

// Snapshot returns fresh copies of the reminder-bearing collections.
func (s *State) Snapshot() ([]model.Habit, []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	c := s.data.Clone()
	return c.Habits, c.Tasks
}

// Data returns a copy of the whole record.
func (s *State) Data() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	return s.data.Clone()
}

// UpdateReminders writes back lastReminderSent values produced by the
// scheduler. Only that field is taken from the arguments, matched by id, so
// edits made since the snapshot was taken are not overwritten.
func (s *State) UpdateReminders(habits []model.Habit, tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	sentH := make(map[string]int64, len(habits))
	for _, h := range habits {
		sentH[h.ID] = h.LastSent
	}
	sentT := make(map[string]int64, len(tasks))
	for _, t := range tasks {
		sentT[t.ID] = t.LastSent
	}

	changed := false
	for i := range s.data.Habits {
		if v, ok := sentH[s.data.Habits[i].ID]; ok && v > s.data.Habits[i].LastSent {
			s.data.Habits[i].LastSent = v
			changed = true
		}
	}
	for i := range s.data.Tasks {
		if v, ok := sentT[s.data.Tasks[i].ID]; ok && v > s.data.Tasks[i].LastSent {
			s.data.Tasks[i].LastSent = v
			changed = true
		}
	}
	if changed {
		s.save()
	}
}

// ---------- tasks ----------

// AddTask stores t, assigning an id and creation time when missing.
func (s *State) AddTask(t model.Task, now time.Time) model.Task {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = now.UnixMilli()
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	s.data.Tasks = append(s.data.Tasks, t)
	s.save()
	return t
}

// ToggleTask flips completion and returns the updated task.
func (s *State) ToggleTask(id string, now time.Time) (model.Task, error) {
	return s.UpdateTask(id, func(t *model.Task) {
		t.Completed = !t.Completed
		if t.Completed {
			t.CompletedAt = now.UnixMilli()
		} else {
			t.CompletedAt = 0
		}
	})
}

// UpdateTask applies fn to the task whose id (or unique id prefix) matches.
func (s *State) UpdateTask(id string, fn func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.Tasks), func(i int) string { return s.data.Tasks[i].ID }, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %q: %w", id, err)
	}
	fn(&s.data.Tasks[i])
	s.save()
	return s.data.Tasks[i], nil
}

func (s *State) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.Tasks), func(i int) string { return s.data.Tasks[i].ID }, id)
	if err != nil {
		return fmt.Errorf("task %q: %w", id, err)
	}
	s.data.Tasks = append(s.data.Tasks[:i], s.data.Tasks[i+1:]...)
	s.save()
	return nil
}

// ---------- habits ----------

func (s *State) AddHabit(h model.Habit, now time.Time) model.Habit {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt == 0 {
		h.CreatedAt = now.UnixMilli()
	}
	if h.Frequency == "" {
		h.Frequency = "daily"
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	s.data.Habits = append(s.data.Habits, h)
	s.save()
	return h
}

// ToggleHabit flips the completion mark for the given day.
func (s *State) ToggleHabit(id, day string, now time.Time) (model.Habit, error) {
	return s.UpdateHabit(id, func(h *model.Habit) { h.Toggle(day, now) })
}

func (s *State) UpdateHabit(id string, fn func(*model.Habit)) (model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.Habits), func(i int) string { return s.data.Habits[i].ID }, id)
	if err != nil {
		return model.Habit{}, fmt.Errorf("habit %q: %w", id, err)
	}
	fn(&s.data.Habits[i])
	s.save()
	return s.data.Habits[i], nil
}

func (s *State) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.Habits), func(i int) string { return s.data.Habits[i].ID }, id)
	if err != nil {
		return fmt.Errorf("habit %q: %w", id, err)
	}
	s.data.Habits = append(s.data.Habits[:i], s.data.Habits[i+1:]...)
	s.save()
	return nil
}

// ---------- pomodoro ----------

// AddSession records a completed pomodoro session.
func (s *State) AddSession(sess model.Session) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	s.data.PomodoroSessions = append(s.data.PomodoroSessions, sess)
	s.save()
}

// TodaysSessions counts completed sessions on now's calendar day.
func (s *State) TodaysSessions(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	return model.TodaysSessionCount(s.data.PomodoroSessions, now)
}

// Presets returns the stored presets, creating the default one if the list
// is empty.
func (s *State) Presets() []model.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	if len(s.data.PomodoroPresets) == 0 {
		s.data.PomodoroPresets = []model.Preset{s.fallback}
		s.save()
	}
	return append([]model.Preset(nil), s.data.PomodoroPresets...)
}

// Preset resolves id to a preset, falling back to the first stored preset
// and then to the built-in default.
func (s *State) Preset(id string) model.Preset {
	presets := s.Presets()
	for _, p := range presets {
		if p.ID == id {
			return p
		}
	}
	if len(presets) > 0 {
		return presets[0]
	}
	return s.fallback
}

// AddPreset stores p. Durations must be positive.
func (s *State) AddPreset(p model.Preset) (model.Preset, error) {
	if p.WorkDuration <= 0 || p.ShortBreakDuration <= 0 || p.LongBreakDuration <= 0 {
		return model.Preset{}, fmt.Errorf("preset %q: durations must be positive", p.Name)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.Presets() // make sure the default exists first

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()
	s.data.PomodoroPresets = append(s.data.PomodoroPresets, p)
	s.save()
	return p, nil
}

func (s *State) UpdatePreset(id string, fn func(*model.Preset)) (model.Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.PomodoroPresets), func(i int) string { return s.data.PomodoroPresets[i].ID }, id)
	if err != nil {
		return model.Preset{}, fmt.Errorf("preset %q: %w", id, err)
	}
	fn(&s.data.PomodoroPresets[i])
	s.save()
	return s.data.PomodoroPresets[i], nil
}

func (s *State) DeletePreset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload()

	i, err := find(len(s.data.PomodoroPresets), func(i int) string { return s.data.PomodoroPresets[i].ID }, id)
	if err != nil {
		return fmt.Errorf("preset %q: %w", id, err)
	}
	s.data.PomodoroPresets = append(s.data.PomodoroPresets[:i], s.data.PomodoroPresets[i+1:]...)
	s.save()
	return nil
}

// ---------- persistence ----------

func (s *State) reload() {
	if s.kv == nil {
		return
	}
	raw, err := s.kv.Get(db.KeyAppState)
	if errors.Is(err, db.ErrNotFound) {
		return
	}
	if err != nil {
		s.logf("[ERROR] Cannot read app state: %s\n", err.Error())
		return
	}
	var data model.AppState
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logf("[WARN] Ignoring malformed app state: %s\n", err.Error())
		return
	}
	s.data = data
}

func (s *State) save() {
	if s.kv == nil {
		return
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.logf("[ERROR] Cannot encode app state: %s\n", err.Error())
		return
	}
	if err := s.kv.Put(db.KeyAppState, raw); err != nil {
		s.logf("[ERROR] Cannot save app state: %s\n", err.Error())
	}
}

func (s *State) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}

// find resolves an exact id or a unique id prefix to an index.
func find(n int, idAt func(int) string, id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrNotFound
	}
	match := -1
	for i := 0; i < n; i++ {
		cur := idAt(i)
		if cur == id {
			return i, nil
		}
		if strings.HasPrefix(cur, id) {
			if match >= 0 {
				return -1, ErrAmbiguous
			}
			match = i
		}
	}
	if match < 0 {
		return -1, ErrNotFound
	}
	return match, nil
}
