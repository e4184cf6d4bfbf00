package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	layout12h = "3:04 PM"
	layout24h = "15:04"
)

// defaultParseTime is the sentinel returned by ParseClock for unparseable input.
const defaultParseTime = "7:00 AM"

func is12Hour(s string) bool {
	u := strings.ToUpper(s)
	return strings.Contains(u, "AM") || strings.Contains(u, "PM")
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if is12Hour(s) {
		return time.Parse(layout12h, strings.ToUpper(s))
	}
	return time.Parse(layout24h, s)
}

// ValidClock reports whether s parses as a 12-hour or 24-hour time of day.
func ValidClock(s string) bool {
	_, err := parseClock(s)
	return err == nil
}

// ParseClock parses a 12-hour ("7:00 AM") or 24-hour ("19:00") time-of-day
// string. Unparseable input yields 7:00 AM rather than an error so that
// downstream layout code never has to abort on a bad profile value.
func ParseClock(s string) time.Time {
	t, err := parseClock(s)
	if err != nil {
		t, _ = time.Parse(layout12h, defaultParseTime)
	}
	return t
}

// Format12h renders a time-of-day in 12-hour clock form without a leading
// zero, matching the format used throughout generated schedules.
func Format12h(t time.Time) string {
	return t.Format(layout12h)
}

// AddMinutes adds n minutes to a clock string, preserving the input's
// 12h/24h format. If the input cannot be parsed it is returned unchanged.
func AddMinutes(timeStr string, n int) string {
	t, err := parseClock(timeStr)
	if err != nil {
		return timeStr
	}
	t = t.Add(time.Duration(n) * time.Minute)
	if is12Hour(timeStr) {
		return t.Format(layout12h)
	}
	return t.Format(layout24h)
}

// SubtractMinutes subtracts n minutes from a clock string, preserving the
// input's format. Unparseable input is returned unchanged.
func SubtractMinutes(timeStr string, n int) string {
	return AddMinutes(timeStr, -n)
}

// FormatRange renders "start - end" in 12-hour form.
func FormatRange(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", Format12h(start), Format12h(end))
}

// RangeMinutes estimates the duration in whole minutes of a range string
// like "9:00 AM - 11:00 AM". Malformed ranges and non-positive spans count
// as 60 minutes.
func RangeMinutes(timeRange string) int {
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return 60
	}
	start, err := parseClock(parts[0])
	if err != nil {
		return 60
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return 60
	}
	d := int(end.Sub(start).Minutes())
	if d <= 0 {
		return 60
	}
	return d
}
