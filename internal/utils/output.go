package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ramanasai/prodhub/internal/model"
	"github.com/ramanasai/prodhub/internal/notify"
	"github.com/ramanasai/prodhub/internal/reminder"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatCSV     OutputFormat = "csv"
	FormatQuiet   OutputFormat = "quiet"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatDefault:
		return FormatDefault, nil
	case FormatJSON, FormatYAML, FormatCSV, FormatQuiet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want default, json, yaml, csv or quiet)", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format   OutputFormat
	Width    int
	ShowID   bool
	Color    bool
	Location *time.Location
	Now      time.Time
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}

	return &RenderConfig{
		Format:   FormatDefault,
		Width:    width,
		ShowID:   true,
		Color:    os.Getenv("NO_COLOR") == "",
		Location: time.Local,
		Now:      time.Now(),
	}
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	ID        lipgloss.Style
	Text      lipgloss.Style
	Done      lipgloss.Style
	Reminder  lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Now.IsZero() {
		config.Now = time.Now()
	}
	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
	}
}

func initStyles(color bool) *Styles {
	styles := &Styles{}

	if color {
		styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
		styles.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
		styles.Meta = lipgloss.NewStyle().Faint(true)
		styles.ID = lipgloss.NewStyle().Faint(true)
		styles.Text = lipgloss.NewStyle()
		styles.Done = lipgloss.NewStyle().Faint(true).Strikethrough(true)
		styles.Reminder = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7"))
		styles.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
		styles.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
		styles.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	} else {
		// Monochrome styles
		styles.Title = lipgloss.NewStyle().Bold(true)
		styles.Separator = lipgloss.NewStyle()
		styles.Meta = lipgloss.NewStyle()
		styles.ID = lipgloss.NewStyle()
		styles.Text = lipgloss.NewStyle()
		styles.Done = lipgloss.NewStyle()
		styles.Reminder = lipgloss.NewStyle()
		styles.Success = lipgloss.NewStyle()
		styles.Error = lipgloss.NewStyle()
		styles.Warning = lipgloss.NewStyle()
	}

	return styles
}

// RenderTasks renders tasks according to the configured format.
func (r *Renderer) RenderTasks(tasks []model.Task) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(tasks)
	case FormatYAML:
		return renderYAML(tasks)
	case FormatCSV:
		rows := [][]string{{"id", "title", "priority", "completed", "deadline", "reminder"}}
		for _, t := range tasks {
			rows = append(rows, []string{t.ID, t.Title, string(t.Priority),
				strconv.FormatBool(t.Completed), t.Deadline, ReminderSummary(t.Reminder)})
		}
		return renderCSV(rows), nil
	case FormatQuiet:
		var b strings.Builder
		for _, t := range tasks {
			b.WriteString(t.Title)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	var b strings.Builder
	open := 0
	for _, t := range tasks {
		if !t.Completed {
			open++
		}
	}
	r.header(&b, "Tasks", fmt.Sprintf("%d open of %d", open, len(tasks)))
	for _, t := range tasks {
		var parts []string
		if r.config.ShowID {
			parts = append(parts, r.styles.ID.Render("["+ShortID(t.ID)+"]"))
		}
		if t.Completed {
			parts = append(parts, r.styles.Success.Render("✓"), r.styles.Done.Render(t.Title))
		} else {
			parts = append(parts, "○", r.styles.Text.Render(t.Title))
		}
		parts = append(parts, r.priority(t.Priority))
		if t.Deadline != "" {
			parts = append(parts, r.deadline(t))
		}
		if s := ReminderSummary(t.Reminder); s != "" {
			parts = append(parts, r.styles.Reminder.Render("⏰ "+s))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
		if t.Description != "" {
			b.WriteString(r.styles.Meta.Render("    " + t.Description))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// RenderHabits renders habits with today's mark and streaks.
func (r *Renderer) RenderHabits(habits []model.Habit) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(habits)
	case FormatYAML:
		return renderYAML(habits)
	case FormatCSV:
		rows := [][]string{{"id", "name", "frequency", "streak", "best_streak", "reminder"}}
		for _, h := range habits {
			rows = append(rows, []string{h.ID, h.Name, h.Frequency,
				strconv.Itoa(h.Streak), strconv.Itoa(h.BestStreak), ReminderSummary(h.Reminder)})
		}
		return renderCSV(rows), nil
	case FormatQuiet:
		var b strings.Builder
		for _, h := range habits {
			b.WriteString(h.Name)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	now := r.config.Now.In(r.config.Location)
	today := model.DateKey(now)
	var b strings.Builder
	left := 0
	for _, h := range habits {
		if !h.CompletedOn(today) {
			left++
		}
	}
	r.header(&b, "Habits", fmt.Sprintf("%d left today", left))
	for _, h := range habits {
		var parts []string
		if r.config.ShowID {
			parts = append(parts, r.styles.ID.Render("["+ShortID(h.ID)+"]"))
		}
		if h.CompletedOn(today) {
			parts = append(parts, r.styles.Success.Render("✓"))
		} else {
			parts = append(parts, "○")
		}
		parts = append(parts, r.styles.Text.Render(h.Name))
		streak := model.CurrentStreak(h.CompletedDates, now)
		parts = append(parts, r.styles.Meta.Render(fmt.Sprintf("🔥 %d (best %d)", streak, max(streak, h.BestStreak))))
		if s := ReminderSummary(h.Reminder); s != "" {
			parts = append(parts, r.styles.Reminder.Render("⏰ "+s))
		}
		b.WriteString(strings.Join(parts, "  "))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// RenderNotifications renders the in-app notification list, newest first.
func (r *Renderer) RenderNotifications(items []model.Notification) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(items)
	case FormatYAML:
		return renderYAML(items)
	case FormatCSV:
		rows := [][]string{{"id", "type", "title", "message", "timestamp", "read"}}
		for _, n := range items {
			rows = append(rows, []string{n.ID, string(n.Kind), n.Title, n.Message,
				strconv.FormatInt(n.Timestamp, 10), strconv.FormatBool(n.Read)})
		}
		return renderCSV(rows), nil
	case FormatQuiet:
		var b strings.Builder
		for _, n := range items {
			b.WriteString(n.Message)
			b.WriteString("\n")
		}
		return b.String(), nil
	}

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	var b strings.Builder
	r.header(&b, "Notifications", fmt.Sprintf("%d unread", unread))
	for _, n := range items {
		mark := " "
		if !n.Read {
			mark = r.styles.Warning.Render("•")
		}
		age := notify.FormatAge(n.Timestamp, r.config.Now.In(r.config.Location))
		line := fmt.Sprintf("%s %s  %s  %s", mark, r.styles.Title.Render(n.Title), n.Message, r.styles.Meta.Render(age))
		if r.config.ShowID {
			line += "  " + r.styles.ID.Render(n.ID)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// RenderExport dumps the whole app record as JSON or YAML.
func (r *Renderer) RenderExport(state model.AppState) (string, error) {
	if r.config.Format == FormatYAML {
		return renderYAML(state)
	}
	return renderJSON(state)
}

func (r *Renderer) header(b *strings.Builder, title, meta string) {
	b.WriteString(r.styles.Title.Render(title))
	if meta != "" {
		b.WriteString("  ")
		b.WriteString(r.styles.Meta.Render(meta))
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120))))
	b.WriteString("\n")
}

func (r *Renderer) priority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return r.styles.Error.Render("high")
	case model.PriorityLow:
		return r.styles.Meta.Render("low")
	default:
		return r.styles.Warning.Render("medium")
	}
}

func (r *Renderer) deadline(t model.Task) string {
	days, ok := reminder.DaysUntil(t.Deadline, r.config.Now.In(r.config.Location))
	if !ok {
		return r.styles.Meta.Render("due " + t.Deadline)
	}
	text := "due " + DescribeDays(days)
	if t.Completed {
		return r.styles.Meta.Render(text)
	}
	switch {
	case days < 0:
		return r.styles.Error.Render(text)
	case days <= 1:
		return r.styles.Warning.Render(text)
	}
	return r.styles.Meta.Render(text)
}

// DescribeDays turns a day difference into "today", "tomorrow",
// "in 3 days" or "2 days ago".
func DescribeDays(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	}
	return fmt.Sprintf("in %d days", days)
}

// ReminderSummary describes an active reminder setting, or "" when off.
func ReminderSummary(r model.Reminder) string {
	if !r.Active() {
		return ""
	}
	switch r.Kind {
	case model.ReminderAutomatic:
		return "every 4h"
	case model.ReminderManual:
		if r.Time == "" {
			return "manual (no time set)"
		}
		return "at " + reminder.FormatClock(r.Time)
	}
	return ""
}

// ShortID is the id prefix shown in listings; commands accept it back.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func renderYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

func renderCSV(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i := range row {
			row[i] = escapeCSV(row[i])
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func escapeCSV(s string) string {
	if strings.Contains(s, ",") || strings.Contains(s, "\"") || strings.Contains(s, "\n") {
		s = strings.ReplaceAll(s, "\"", "\"\"")
		return "\"" + s + "\""
	}
	return s
}
