package pomodoro

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/ramanasai/prodhub/internal/app"
	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
)

var classic = model.Preset{ID: "default", Name: "Classic", WorkDuration: 25, ShortBreakDuration: 5, LongBreakDuration: 15}

func TestRestore(t *testing.T) {
	at := time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)
	running := TimerState{TimeLeft: 100, IsRunning: true, SessionType: model.SessionWork, LastUpdateTime: at.UnixMilli()}

	type testCase struct {
		name   string
		state  TimerState
		now    time.Time
		expect float64
	}
	stopped := running
	stopped.IsRunning = false
	var cases = []testCase{
		{"elapsed 30s", running, at.Add(30 * time.Second), 70},
		{"not running", stopped, at.Add(30 * time.Second), 100},
		{"overran", running, at.Add(10 * time.Minute), 0},
		{"clock went back", running, at.Add(-time.Minute), 100},
	}
	for _, c := range cases {
		if got := Restore(c.state, c.now).TimeLeft; got != c.expect {
			t.Errorf("%s: expected %v, got %v", c.name, c.expect, got)
		}
	}
}

func TestStoppedRoundTripIsLossless(t *testing.T) {
	kv := db.NewMemory()
	at := time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)
	in := TimerState{TimeLeft: 812.5, SessionType: model.SessionShortBreak, ActivePresetID: "deep"}

	if err := Save(kv, in, at); err != nil {
		t.Fatal(err)
	}
	out, err := Load(kv, classic, at.Add(3*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	in.LastUpdateTime = at.UnixMilli()
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}

	raw, _ := kv.Get(db.KeyTimerState)
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"timeLeft", "isRunning", "sessionType", "lastUpdateTime", "activePresetId"} {
		if _, ok := fields[k]; !ok {
			t.Errorf("persisted record lacks %q", k)
		}
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	kv := db.NewMemory()
	now := time.Now()

	s, err := Load(kv, classic, now)
	if err != nil {
		t.Fatalf("missing record is not an error: %v", err)
	}
	if s.TimeLeft != 25*60 || s.IsRunning || s.SessionType != model.SessionWork || s.ActivePresetID != "default" {
		t.Errorf("unexpected default %+v", s)
	}

	_ = kv.Put(db.KeyTimerState, []byte("{not json"))
	s, err = Load(kv, classic, now)
	if err == nil {
		t.Error("malformed record should be reported")
	}
	if s.TimeLeft != 25*60 {
		t.Errorf("malformed record should fall back to default, got %+v", s)
	}
}

func TestNextSessionCadence(t *testing.T) {
	var breaks []model.SessionKind
	done := 0
	for i := 0; i < 4; i++ {
		var next model.SessionKind
		next, done = NextSession(model.SessionWork, done)
		breaks = append(breaks, next)
		if back, same := NextSession(next, done); back != model.SessionWork || same != done {
			t.Errorf("break must return to work without counting, got %s/%d", back, same)
		}
	}
	expect := []model.SessionKind{model.SessionShortBreak, model.SessionShortBreak, model.SessionShortBreak, model.SessionLongBreak}
	for i := range expect {
		if breaks[i] != expect[i] {
			t.Errorf("break %d: expected %s, got %s", i+1, expect[i], breaks[i])
		}
	}
}

type alerts struct {
	sent, chimes int
}

func (a *alerts) Send(string, string) { a.sent++ }
func (a *alerts) Chime()              { a.chimes++ }

func TestCountdownRunsFullCycle(t *testing.T) {
	kv := db.NewMemory()
	state := app.Load(kv, classic, nil)
	inbox := notify.NewInbox(kv, nil)
	desk := &alerts{}
	c := NewCountdown(kv, state, Options{Inbox: inbox, Desktop: desk, Announce: true})

	now := time.Date(2024, 5, 14, 8, 0, 0, 0, time.Local)
	c.Start(now)

	var seen []model.SessionKind
	for i := 0; i < 4; i++ {
		now = now.Add(25 * time.Minute)
		s := c.Tick(now)
		seen = append(seen, s.SessionType)
		if !s.IsRunning {
			t.Fatal("next session should start on its own")
		}
		if s.TimeLeft != float64(classic.Minutes(s.SessionType)*60) {
			t.Errorf("break not seeded from preset: %v", s.TimeLeft)
		}
		now = now.Add(time.Duration(s.TimeLeft) * time.Second)
		if back := c.Tick(now); back.SessionType != model.SessionWork {
			t.Fatalf("break should end in work, got %s", back.SessionType)
		}
	}

	expect := []model.SessionKind{model.SessionShortBreak, model.SessionShortBreak, model.SessionShortBreak, model.SessionLongBreak}
	for i := range expect {
		if seen[i] != expect[i] {
			t.Errorf("cycle %d: expected %s, got %s", i+1, expect[i], seen[i])
		}
	}
	if n := state.TodaysSessions(now); n != 4 {
		t.Errorf("expected 4 recorded sessions, got %d", n)
	}
	if got := len(inbox.List()); got != 8 {
		t.Errorf("expected 8 transition notices, got %d", got)
	}
	if desk.chimes != 8 || desk.sent != 8 {
		t.Errorf("expected 8 chimes and 8 desktop notices, got %d/%d", desk.chimes, desk.sent)
	}
}

func TestCountdownSharedAcrossInstances(t *testing.T) {
	kv := db.NewMemory()
	state := app.Load(kv, classic, nil)
	a := NewCountdown(kv, state, Options{})
	b := NewCountdown(kv, state, Options{})

	now := time.Date(2024, 5, 14, 8, 0, 0, 0, time.Local)
	a.Start(now)
	s := b.State(now.Add(time.Minute))
	if !s.IsRunning || s.TimeLeft != 24*60 {
		t.Errorf("second instance should see the running timer, got %+v", s)
	}
	b.Pause(now.Add(time.Minute))
	if a.State(now.Add(time.Hour)).TimeLeft != 24*60 {
		t.Error("paused timer must not keep counting")
	}
}

func TestStoppedOnlyControls(t *testing.T) {
	kv := db.NewMemory()
	state := app.Load(kv, classic, nil)
	deep, err := state.AddPreset(model.Preset{Name: "Deep", WorkDuration: 50, ShortBreakDuration: 10, LongBreakDuration: 30})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCountdown(kv, state, Options{})
	now := time.Now()

	s, err := c.CycleSession(now)
	if err != nil || s.SessionType != model.SessionShortBreak || s.TimeLeft != 5*60 {
		t.Errorf("cycle: %+v %v", s, err)
	}
	s, err = c.SelectPreset(deep.ID, now)
	if err != nil || s.ActivePresetID != deep.ID || s.SessionType != model.SessionWork || s.TimeLeft != 50*60 {
		t.Errorf("select preset: %+v %v", s, err)
	}

	c.Start(now)
	if _, err := c.CycleSession(now); !errors.Is(err, ErrRunning) {
		t.Errorf("expected ErrRunning, got %v", err)
	}
	if _, err := c.SelectPreset("default", now); !errors.Is(err, ErrRunning) {
		t.Errorf("expected ErrRunning, got %v", err)
	}
	if s := c.Reset(now.Add(time.Minute)); s.IsRunning || s.TimeLeft != 50*60 {
		t.Errorf("reset should stop and refill, got %+v", s)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[float64]string{0: "00:00", 0.2: "00:01", 59: "00:59", 1500: "25:00", -3: "00:00"}
	for in, expect := range cases {
		if got := FormatRemaining(in); got != expect {
			t.Errorf("%v: expected %s, got %s", in, expect, got)
		}
	}
}
