package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/prodhub/internal/model"
)

var (
	relativeDays = regexp.MustCompile(`^(?:in\s+|\+)?(\d+)\s*(d|day|days|w|week|weeks)$`)
	weekdays     = map[string]time.Weekday{
		"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
		"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	}
)

// ParseDeadline turns user input into a YYYY-MM-DD deadline relative to now.
// It accepts today, tomorrow, yesterday, "in 3 days", "+2w", weekday names
// (the next such day, never today), "next week" and common date formats.
func ParseDeadline(input string, now time.Time) (string, error) {
	t, err := ParseFlexibleDate(input, now)
	if err != nil {
		return "", err
	}
	return model.DateKey(t), nil
}

// ParseFlexibleDate attempts to parse various date formats and natural language
func ParseFlexibleDate(input string, now time.Time) (time.Time, error) {
	raw := strings.TrimSpace(input)
	input = strings.ToLower(raw)
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// Handle natural language patterns
	switch input {
	case "today", "now", "tonight", "eod":
		return today, nil
	case "tomorrow", "tmr", "tmrw":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next week":
		return today.AddDate(0, 0, 7), nil
	case "next month":
		return today.AddDate(0, 1, 0), nil
	case "end of week", "eow":
		return today.AddDate(0, 0, (int(time.Sunday)-int(now.Weekday())+7)%7), nil
	}

	// "in 3 days", "+2w", "5d"
	if m := relativeDays.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		if strings.HasPrefix(m[2], "w") {
			n *= 7
		}
		return today.AddDate(0, 0, n), nil
	}

	// weekday names, optionally prefixed with "next"
	name := strings.TrimPrefix(input, "next ")
	if len(name) >= 3 {
		if wd, ok := weekdays[name[:3]]; ok {
			ahead := (int(wd) - int(now.Weekday()) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			return today.AddDate(0, 0, ahead), nil
		}
	}

	// Try various date formats
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"2 January 2006",
		"Jan 2",
		"2 Jan",
		"January 2",
		"2006-01-02 15:04",
		time.RFC3339,
	}

	for _, format := range formats {
		t, err := time.ParseInLocation(format, raw, loc)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			// no year given: the next occurrence of that day
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
			if t.Before(today) {
				t = t.AddDate(1, 0, 0)
			}
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// ParseClockInput normalizes a reminder time such as "9:05", "0905",
// "9am" or "5:30 pm" to HH:MM.
func ParseClockInput(input string) (string, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if s == "" {
		return "", fmt.Errorf("empty time input")
	}
	for _, layout := range []string{"15:04", "1504", "3:04pm", "3pm", "15"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("unable to parse time: %s", input)
}
