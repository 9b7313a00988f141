package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const DateLayout = "2006-01-02"

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?::\d{2})?\s*([ap])?\.?\s*(m\.?)?$`)

// ParseHour extracts the 0..23 hour from a booking or event time string.
//
// Accepted forms are "9:30", "09:30", "09:30:00", "9:30 AM", "9:30pm", "9 am".
// It returns false for empty input, the "Full-day (Weekend)" marker, values
// out of range, and a bare number without minutes or meridiem.
func ParseHour(s string) (int, bool) {
	minutes, ok := ParseClock(s)
	if !ok {
		return 0, false
	}
	return minutes / 60, true
}

// ParseClock is ParseHour with minute precision: minutes since midnight.
func ParseClock(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "full-day") || strings.HasPrefix(s, "full day") {
		return 0, false
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	meridiem := m[3]
	if meridiem != "" && m[4] == "" {
		return 0, false
	}

	switch meridiem {
	case "":
		if m[2] == "" || hour > 23 {
			return 0, false
		}
	case "a":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	}

	return hour*60 + minute, true
}

// HourLabel renders an hour the way the agenda labels its rows: "12:00 AM".
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:00 %s", h, suffix)
}
