package pomodoro

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ramanasai/prodhub/internal/db"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
)

var ErrRunning = errors.New("stop the timer first")

// Sessions is the countdown's view of the app state.
type Sessions interface {
	Preset(id string) model.Preset
	TodaysSessions(now time.Time) int
	AddSession(model.Session)
}

// Sink receives the in-app transition notice.
type Sink interface {
	Add(model.Notification)
}

// Alerter is the best-effort OS channel.
type Alerter interface {
	Send(title, message string)
	Chime()
}

type Options struct {
	Inbox    Sink
	Desktop  Alerter
	Announce bool // post a notification on every session switch
	Log      *log.Logger
}

// Countdown owns the timer. Each call re-reads the persisted record so
// several processes can drive the same timer.
type Countdown struct {
	kv       db.KV
	sessions Sessions
	opts     Options

	mu     sync.Mutex
	state  TimerState
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCountdown(kv db.KV, sessions Sessions, opts Options) *Countdown {
	return &Countdown{
		kv:       kv,
		sessions: sessions,
		opts:     opts,
		state:    Default(sessions.Preset("")),
	}
}

// State returns the projected timer without writing it.
func (c *Countdown) State(now time.Time) TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload(now)
	return c.state
}

// Preset is the preset the timer currently counts with.
func (c *Countdown) Preset(now time.Time) model.Preset {
	return c.sessions.Preset(c.State(now).ActivePresetID)
}

// Tick advances the countdown to now, finishing the session if it ran out.
func (c *Countdown) Tick(now time.Time) TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload(now)
	if !c.state.IsRunning {
		return c.state
	}
	if c.state.TimeLeft <= 0 {
		c.complete(now)
	}
	c.save(now)
	return c.state
}

func (c *Countdown) Start(now time.Time) TimerState {
	return c.mutate(now, func(s *TimerState) error {
		if s.TimeLeft <= 0 {
			s.TimeLeft = float64(c.sessions.Preset(s.ActivePresetID).Minutes(s.SessionType) * 60)
		}
		s.IsRunning = true
		return nil
	})
}

func (c *Countdown) Pause(now time.Time) TimerState {
	return c.mutate(now, func(s *TimerState) error {
		s.IsRunning = false
		return nil
	})
}

// Toggle starts a stopped timer and pauses a running one.
func (c *Countdown) Toggle(now time.Time) TimerState {
	if c.State(now).IsRunning {
		return c.Pause(now)
	}
	return c.Start(now)
}

// Reset stops the timer and refills the current session.
func (c *Countdown) Reset(now time.Time) TimerState {
	return c.mutate(now, func(s *TimerState) error {
		s.IsRunning = false
		s.TimeLeft = float64(c.sessions.Preset(s.ActivePresetID).Minutes(s.SessionType) * 60)
		return nil
	})
}

// CycleSession switches a stopped timer to the next session kind
// (work, short break, long break, work).
func (c *Countdown) CycleSession(now time.Time) (TimerState, error) {
	var err error
	s := c.mutate(now, func(s *TimerState) error {
		if s.IsRunning {
			err = ErrRunning
			return err
		}
		s.SessionType = s.SessionType.Next()
		s.TimeLeft = float64(c.sessions.Preset(s.ActivePresetID).Minutes(s.SessionType) * 60)
		return nil
	})
	return s, err
}

// SelectPreset switches a stopped timer to preset id and resets it to a
// work session.
func (c *Countdown) SelectPreset(id string, now time.Time) (TimerState, error) {
	var err error
	s := c.mutate(now, func(s *TimerState) error {
		if s.IsRunning {
			err = ErrRunning
			return err
		}
		p := c.sessions.Preset(id)
		s.ActivePresetID = p.ID
		s.SessionType = model.SessionWork
		s.TimeLeft = float64(p.WorkDuration * 60)
		return nil
	})
	return s, err
}

func (c *Countdown) mutate(now time.Time, fn func(*TimerState) error) TimerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reload(now)
	if err := fn(&c.state); err != nil {
		return c.state
	}
	c.save(now)
	return c.state
}

// complete records a finished work session and moves on to the next
// session, which starts counting right away.
func (c *Countdown) complete(now time.Time) {
	from := c.state.SessionType
	preset := c.sessions.Preset(c.state.ActivePresetID)

	done := 0
	if from == model.SessionWork {
		done = c.sessions.TodaysSessions(now)
		c.sessions.AddSession(model.Session{
			Date:      model.DateKey(now),
			Duration:  preset.WorkDuration,
			Completed: true,
		})
	}
	next, _ := NextSession(from, done)

	c.state.SessionType = next
	c.state.TimeLeft = float64(preset.Minutes(next) * 60)
	c.state.IsRunning = true
	c.logf("[INFO] %s finished, starting %s\n", from.Label(), next.Label())

	n := notify.PomodoroTransition(from, next, now)
	if c.opts.Announce && c.opts.Inbox != nil {
		c.opts.Inbox.Add(n)
	}
	if c.opts.Desktop != nil {
		if c.opts.Announce {
			c.opts.Desktop.Send(n.Title, n.Message)
		}
		c.opts.Desktop.Chime()
	}
}

func (c *Countdown) reload(now time.Time) {
	if c.kv != nil {
		s, err := Load(c.kv, c.sessions.Preset(""), now)
		if err != nil {
			c.logf("[WARN] Keeping in-memory timer: %s\n", err.Error())
		} else {
			c.state = s
			return
		}
	}
	c.state = Restore(c.state, now)
}

func (c *Countdown) save(now time.Time) {
	c.state.LastUpdateTime = now.UnixMilli()
	if c.kv == nil {
		return
	}
	if err := Save(c.kv, c.state, now); err != nil {
		c.logf("[ERROR] %s\n", err.Error())
	}
}

// Run ticks every interval until ctx is done or Stop is called. Calling Run
// on a running countdown does nothing.
func (c *Countdown) Run(ctx context.Context, interval time.Duration, clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	if interval <= 0 {
		interval = time.Second
	}
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done
	c.mu.Unlock()

	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.Tick(clock())
			}
		}
	}()
}

// Stop ends Run. It is safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

func (c *Countdown) logf(format string, args ...any) {
	if c.opts.Log != nil {
		c.opts.Log.Printf(format, args...)
	}
}
