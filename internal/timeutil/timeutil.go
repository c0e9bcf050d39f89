// Package timeutil converts between "HH:MM" clock strings, minute-of-day
// integers and the five-day schedule week.
package timeutil

import (
	"fmt"
	"regexp"
	"time"

	"github.com/noah-isme/timetable-tracker-api/internal/models"
	appErrors "github.com/noah-isme/timetable-tracker-api/pkg/errors"
)

// clockPattern accepts 24-hour HH:MM with an optional leading zero on the hour.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock converts a 24-hour "HH:MM" string into minute-of-day.
// It fails with ErrInvalidFormat for anything outside 00:00-23:59.
func ParseClock(s string) (int, error) {
	match := clockPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, appErrors.Clone(appErrors.ErrInvalidFormat, fmt.Sprintf("%q is not a valid 24-hour HH:MM time", s))
	}
	var hours, minutes int
	fmt.Sscanf(match[1], "%d", &hours)
	fmt.Sscanf(match[2], "%d", &minutes)
	return hours*60 + minutes, nil
}

// IsValidClock reports whether s parses as a 24-hour HH:MM time.
func IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// Format12Hour renders minute-of-day as "h:mm AM/PM". Both 0 and 12 hours
// render as 12.
func Format12Hour(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	display := hours % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, mins, period)
}

// FormatDuration renders a minute count as "2h 15m", dropping zero parts.
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
}

// MinuteOfDay returns the wall-clock minute-of-day for t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CurrentWeekday buckets t into the five-day schedule week. Saturday and
// Sunday fall back to Monday so the app can preview the next school day.
func CurrentWeekday(t time.Time) models.Weekday {
	switch t.Weekday() {
	case time.Tuesday:
		return models.Tuesday
	case time.Wednesday:
		return models.Wednesday
	case time.Thursday:
		return models.Thursday
	case time.Friday:
		return models.Friday
	default:
		return models.Monday
	}
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
