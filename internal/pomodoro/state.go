// Package pomodoro keeps the single countdown timer. Its state is persisted
// on every change and projected forward on load, so a countdown keeps
// running while no process is watching it.
package pomodoro

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
)

// LongBreakEvery is the number of completed work sessions per long break.
const LongBreakEvery = 4

// TimerState is the persisted countdown. TimeLeft is in seconds,
// LastUpdateTime in epoch milliseconds.
type TimerState struct {
	TimeLeft       float64           `json:"timeLeft"`
	IsRunning      bool              `json:"isRunning"`
	SessionType    model.SessionKind `json:"sessionType"`
	LastUpdateTime int64             `json:"lastUpdateTime"`
	ActivePresetID string            `json:"activePresetId"`
}

// Default is a stopped work session of p's length.
func Default(p model.Preset) TimerState {
	return TimerState{
		TimeLeft:       float64(p.WorkDuration * 60),
		SessionType:    model.SessionWork,
		ActivePresetID: p.ID,
	}
}

// Restore projects s to now. A running countdown loses the seconds elapsed
// since its last update (never going below zero, never gaining time if the
// clock went backwards). Stopped or finished states are returned unchanged.
func Restore(s TimerState, now time.Time) TimerState {
	if !s.IsRunning || s.TimeLeft <= 0 {
		return s
	}
	elapsed := float64(now.UnixMilli()-s.LastUpdateTime) / 1000
	s.TimeLeft = math.Max(0, s.TimeLeft-math.Max(0, elapsed))
	s.LastUpdateTime = now.UnixMilli()
	return s
}

// Save writes s stamped with now as the only timer record.
func Save(kv db.KV, s TimerState, now time.Time) error {
	s.LastUpdateTime = now.UnixMilli()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode timer state: %w", err)
	}
	if err := kv.Put(db.KeyTimerState, raw); err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}

// Load reads and projects the timer record. A missing record yields
// Default(fallback) and no error; an unreadable or malformed one yields
// Default(fallback) together with the error so callers can log it.
func Load(kv db.KV, fallback model.Preset, now time.Time) (TimerState, error) {
	raw, err := kv.Get(db.KeyTimerState)
	if errors.Is(err, db.ErrNotFound) {
		return Default(fallback), nil
	}
	if err != nil {
		return Default(fallback), fmt.Errorf("read timer state: %w", err)
	}
	var s TimerState
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default(fallback), fmt.Errorf("decode timer state: %w", err)
	}
	if s.SessionType == "" {
		s.SessionType = model.SessionWork
	}
	if s.TimeLeft < 0 {
		s.TimeLeft = 0
	}
	return Restore(s, now), nil
}

// NextSession applies the fixed cadence: a finished work session is followed
// by a long break every LongBreakEvery sessions and a short break otherwise;
// any break is followed by work. completed is the number of work sessions
// finished before this one; the updated count is returned.
func NextSession(finished model.SessionKind, completed int) (model.SessionKind, int) {
	if finished != model.SessionWork {
		return model.SessionWork, completed
	}
	completed++
	if completed%LongBreakEvery == 0 {
		return model.SessionLongBreak, completed
	}
	return model.SessionShortBreak, completed
}

// FormatRemaining renders seconds as MM:SS, rounding partial seconds up so
// the display reaches 00:00 only at the end.
func FormatRemaining(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Ceil(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Progress is the elapsed fraction of the current session, in [0,1].
func Progress(s TimerState, p model.Preset) float64 {
	full := float64(p.Minutes(s.SessionType) * 60)
	if full <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, 1-s.TimeLeft/full))
}
