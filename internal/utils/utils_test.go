package utils

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ramanasai/prodhub/internal/model"
	"gopkg.in/yaml.v3"
)

// Tuesday
var now = time.Date(2024, 5, 14, 15, 30, 0, 0, time.UTC)

func TestParseDeadline(t *testing.T) {
	cases := map[string]string{
		"today":       "2024-05-14",
		"Tomorrow":    "2024-05-15",
		"in 3 days":   "2024-05-17",
		"+2w":         "2024-05-28",
		"5d":          "2024-05-19",
		"friday":      "2024-05-17",
		"next tue":    "2024-05-21",
		"2024-06-01":  "2024-06-01",
		"2024/06/02":  "2024-06-02",
		"Jun 3, 2024": "2024-06-03",
		"jan 5":       "2025-01-05",
		"May 20":      "2024-05-20",
	}
	for in, expect := range cases {
		got, err := ParseDeadline(in, now)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			continue
		}
		if got != expect {
			t.Errorf("%q: expected %s, got %s", in, expect, got)
		}
	}
	if _, err := ParseDeadline("someday", now); err == nil {
		t.Error("expected an error for unparseable input")
	}
}

func TestParseClockInput(t *testing.T) {
	cases := map[string]string{
		"9:05":    "09:05",
		"21:30":   "21:30",
		"0905":    "09:05",
		"9am":     "09:00",
		"5:30 PM": "17:30",
	}
	for in, expect := range cases {
		if got, err := ParseClockInput(in); err != nil || got != expect {
			t.Errorf("%q: expected %s, got %s (%v)", in, expect, got, err)
		}
	}
	if _, err := ParseClockInput("25:99"); err == nil {
		t.Error("invalid time should fail")
	}
}

func TestReminderSummary(t *testing.T) {
	type testCase struct {
		r      model.Reminder
		expect string
	}
	var cases = []testCase{
		{model.Reminder{Kind: model.ReminderAutomatic, Enabled: true}, "every 4h"},
		{model.Reminder{Kind: model.ReminderManual, Time: "09:00", Enabled: true}, "at 9:00 AM"},
		{model.Reminder{Kind: model.ReminderManual, Time: "09:00"}, ""},
		{model.Reminder{Enabled: true}, ""},
	}
	for _, c := range cases {
		if got := ReminderSummary(c.r); got != c.expect {
			t.Errorf("%+v: expected %q, got %q", c.r, c.expect, got)
		}
	}
}

func TestRenderTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "0123456789", Title: "Write, report", Priority: model.PriorityHigh, Deadline: "2024-05-15"},
		{ID: "abc", Title: "Done thing", Completed: true},
	}
	r := NewRenderer(&RenderConfig{Format: FormatDefault, Width: 80, ShowID: true, Location: time.UTC, Now: now})
	out, err := r.RenderTasks(tasks)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1 open of 2", "[01234567]", "due tomorrow", "Done thing"} {
		if !strings.Contains(out, want) {
			t.Errorf("default output lacks %q:\n%s", want, out)
		}
	}

	r = NewRenderer(&RenderConfig{Format: FormatCSV, Now: now})
	out, _ = r.RenderTasks(tasks)
	if !strings.Contains(out, `"Write, report"`) {
		t.Errorf("csv should quote commas:\n%s", out)
	}
}

func TestRenderExport(t *testing.T) {
	state := model.AppState{
		Tasks: []model.Task{{ID: "t1", Title: "Ship", Reminder: model.Reminder{Kind: model.ReminderManual, Time: "09:00", Enabled: true}}},
	}

	out, err := NewRenderer(&RenderConfig{Format: FormatJSON, Now: now}).RenderExport(state)
	if err != nil {
		t.Fatal(err)
	}
	var back model.AppState
	if err := json.Unmarshal([]byte(out), &back); err != nil {
		t.Fatalf("json export does not parse: %v", err)
	}
	if back.Tasks[0].Kind != model.ReminderManual || back.Tasks[0].Time != "09:00" {
		t.Errorf("reminder lost in json export: %+v", back.Tasks[0])
	}

	out, err = NewRenderer(&RenderConfig{Format: FormatYAML, Now: now}).RenderExport(state)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("yaml export does not parse: %v", err)
	}
	tasks, _ := doc["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("expected one task in yaml export, got %v", doc["tasks"])
	}
	if first, _ := tasks[0].(map[string]any); first["reminderType"] != "manual" {
		t.Errorf("reminder fields should be inlined, got %v", first)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Errorf("expected yaml, got %s %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml is not supported")
	}
}
