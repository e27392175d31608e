package cmd

import (
	"strings"
	"testing"

	"github.com/ramanasai/prodhub/internal/model"
)

func TestParseReminder(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Reminder
		wantErr bool
	}{
		{"off", model.Reminder{}, false},
		{"auto", model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}, false},
		{"AUTO", model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}, false},
		{"9:30", model.Reminder{Kind: model.ReminderManual, Time: "09:30", Enabled: true}, false},
		{"21:05", model.Reminder{Kind: model.ReminderManual, Time: "21:05", Enabled: true}, false},
		{"sometime", model.Reminder{}, true},
	}
	for _, tt := range tests {
		got, err := parseReminder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseReminder(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseReminder(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	for in, want := range map[string]model.Priority{
		"":       model.PriorityMedium,
		"high":   model.PriorityHigh,
		" Low ":  model.PriorityLow,
		"medium": model.PriorityMedium,
	} {
		got, err := parsePriority(in)
		if err != nil || got != want {
			t.Errorf("parsePriority(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := parsePriority("urgent"); err == nil {
		t.Error("unknown priority should fail")
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0.5, 10); strings.Count(got, "█") != 5 || strings.Count(got, "░") != 5 {
		t.Errorf("half bar = %q", got)
	}
	if got := progressBar(1, 4); got != "[████]" {
		t.Errorf("full bar = %q", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"watch", "tui", "task", "habit", "timer", "notifications", "quote", "export", "version"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestHabitRemindHelp(t *testing.T) {
	f := habitAddCmd.Flags().Lookup("remind")
	if f == nil {
		t.Fatal("habit add has no --remind flag")
	}
	if strings.Contains(f.Usage, "until") {
		t.Errorf("habit reminders fire whether or not the habit is checked, help says %q", f.Usage)
	}
}
