package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/ramanasai/prodhub/internal/model"
)

func init() {
	beeep.AppName = "prodhub"
}

// Desktop delivers best-effort OS notifications. The first failure of a
// channel (no notification daemon, permission denied, no audio device)
// disables that channel for the rest of the process; the in-app Inbox stays
// the reliable one.
type Desktop struct {
	enabled bool
	sound   bool
	log     *log.Logger

	mu           sync.Mutex
	notifyBroken bool
	beepBroken   bool

	// swapped in tests
	notify func(title, message string) error
	beep   func() error
}

func NewDesktop(enabled, sound bool, l *log.Logger) *Desktop {
	return &Desktop{
		enabled: enabled,
		sound:   sound,
		log:     l,
		notify:  Info,
		beep:    Chime,
	}
}

// Send shows an OS notification unless disabled or previously failed.
func (d *Desktop) Send(title, message string) {
	if d == nil || !d.enabled || d.broken(&d.notifyBroken) {
		return
	}
	if err := d.notify(title, message); err != nil {
		d.markBroken(&d.notifyBroken, "Desktop notifications unavailable, falling back to in-app only", err)
	}
}

// Chime plays the session-complete sound if sound is on. A failing speaker
// never affects Send.
func (d *Desktop) Chime() {
	if d == nil || !d.sound || d.broken(&d.beepBroken) {
		return
	}
	if err := d.beep(); err != nil {
		d.markBroken(&d.beepBroken, "Chime unavailable, sessions will end silently", err)
	}
}

// Available reports whether OS notifications are still being attempted.
func (d *Desktop) Available() bool {
	return d != nil && d.enabled && !d.broken(&d.notifyBroken)
}

func (d *Desktop) broken(flag *bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *flag
}

func (d *Desktop) markBroken(flag *bool, what string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if *flag {
		return
	}
	*flag = true
	if d.log != nil {
		d.log.Printf("[WARN] %s: %s\n", what, err.Error())
	}
}

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Chime() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

func newNotification(title, message string, kind model.NotificationKind, now time.Time) model.Notification {
	return model.Notification{
		ID:        "notif-" + uuid.NewString(),
		Title:     title,
		Message:   message,
		Kind:      kind,
		Timestamp: now.UnixMilli(),
	}
}

func TaskReminder(title string, now time.Time) model.Notification {
	return newNotification("Task Reminder", "Don't forget: "+title, model.KindReminder, now)
}

func DeadlineReminder(title string, now time.Time) model.Notification {
	return TaskReminder("Deadline: "+title, now)
}

func HabitReminder(name string, now time.Time) model.Notification {
	return newNotification("Habit Reminder", "Time to complete: "+name, model.KindReminder, now)
}

// PomodoroTransition announces the session the countdown just switched to.
func PomodoroTransition(from, to model.SessionKind, now time.Time) model.Notification {
	var msg string
	switch {
	case from == model.SessionWork && to == model.SessionLongBreak:
		msg = "Work session done, next: long break"
	case from == model.SessionWork:
		msg = "Work session done, next: short break"
	default:
		msg = "Break done, next: work session"
	}
	return newNotification("Pomodoro Session", msg, model.KindInfo, now)
}

func FormatDailyDigest(openTasks, habitsLeft int) (string, string) {
	title := "Daily check-in"
	msg := fmt.Sprintf("You have %d open tasks and %d habits left today.", openTasks, habitsLeft)
	return title, msg
}

// DailyDigest is the in-app copy of the evening check-in.
func DailyDigest(openTasks, habitsLeft int, now time.Time) model.Notification {
	title, msg := FormatDailyDigest(openTasks, habitsLeft)
	return newNotification(title, msg, model.KindInfo, now)
}

// FormatAge renders a notification timestamp relative to now.
func FormatAge(ts int64, now time.Time) string {
	diff := now.Sub(time.UnixMilli(ts))
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return time.UnixMilli(ts).In(now.Location()).Format("2006-01-02")
}
