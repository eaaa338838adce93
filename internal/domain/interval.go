package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of a wall-clock day.
const MinutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" 24-hour time into minutes since midnight.
// A trailing ":SS" component is accepted and ignored.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, ErrInvalidClock
	}
	if len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidClock
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, ErrInvalidClock
	}
	return hours*60 + mins, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Duration returns the minutes from start to end.
// An end before start means the interval crosses midnight.
func Duration(start, end int) int {
	d := end - start
	if d < 0 {
		d += MinutesPerDay
	}
	return max(d, 0)
}

// ClockDuration parses both ends and returns their duration.
func ClockDuration(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, fmt.Errorf("start %q: %w", start, err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, fmt.Errorf("end %q: %w", end, err)
	}
	return Duration(s, e), nil
}

// TaskDuration returns the planned duration of a task in minutes.
// Unparsable times contribute 0 so one bad record cannot break a summary.
func TaskDuration(t *Task) int {
	if t == nil {
		return 0
	}
	d, err := ClockDuration(t.StartTime, t.EndTime)
	if err != nil {
		return 0
	}
	return d
}

// FormatMinutes renders a minute count as "2h 5m", "45m" or "0m".
func FormatMinutes(total int) string {
	if total <= 0 {
		return "0m"
	}
	hours := total / 60
	rem := total % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, rem)
	}
	return fmt.Sprintf("%dm", rem)
}
