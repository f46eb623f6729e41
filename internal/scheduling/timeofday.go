package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a minute-granular clock time counted from midnight.
type TimeOfDay int

// MinutesPerDay bounds the valid interval range for a single day.
const MinutesPerDay = 24 * 60

// EndOfDay is the exclusive upper bound of an interval, midnight of the next day.
const EndOfDay TimeOfDay = MinutesPerDay

// DateLayout is the wire format for dates exchanged with collaborators.
const DateLayout = "2006-01-02"

// ParseTimeOfDay converts an "HH:MM" string to a TimeOfDay. Parsing is
// deliberately permissive: non-numeric components coerce to zero and
// out-of-range results clamp into the day, mirroring the lenient input
// handling of the assignment forms this core was extracted from. Callers
// that need strict validation should check the string shape first.
func ParseTimeOfDay(value string) TimeOfDay {
	hourPart, minutePart, _ := strings.Cut(strings.TrimSpace(value), ":")

	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || hour < 0 {
		hour = 0
	}
	minute, err := strconv.Atoi(strings.TrimSpace(minutePart))
	if err != nil || minute < 0 {
		minute = 0
	}

	t := TimeOfDay(hour*60 + minute)
	if t >= EndOfDay {
		return EndOfDay - 1
	}
	return t
}

// IsClockString reports whether value is a well-formed zero-padded 24-hour
// "HH:MM" string. The transport layer uses this to reject malformed input
// before it reaches the permissive core parser.
func IsClockString(value string) bool {
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	hour, err := strconv.Atoi(value[:2])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(value[3:])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}
	return true
}

// String renders the time in the "HH:MM" wire format. EndOfDay renders as
// "24:00" so a clamped interval end remains distinguishable from midnight.
func (t TimeOfDay) String() string {
	if t < 0 {
		t = 0
	}
	if t > EndOfDay {
		t = EndOfDay
	}
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time shifted forward by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Interval is a half-open [Start, End) span within a single day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the interval lies within a single day with a
// strictly positive duration.
func (i Interval) Valid() bool {
	return i.Start >= 0 && i.End <= EndOfDay && i.Start < i.End
}

// Minutes returns the interval duration in minutes.
func (i Interval) Minutes() int {
	return int(i.End - i.Start)
}

// Overlaps reports whether two same-day intervals intersect. Intervals that
// merely touch (one ends exactly when the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// String renders the interval as "HH:MM-HH:MM".
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// ParseInterval builds an interval from two clock strings using the
// permissive time parser.
func ParseInterval(start, end string) Interval {
	return Interval{Start: ParseTimeOfDay(start), End: ParseTimeOfDay(end)}
}

// ParseDate parses a "YYYY-MM-DD" civil date. Unlike clock-time parsing,
// date parsing is strict: a bad date silently mapped to the zero day would
// shift conflicts onto the wrong calendar entries.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("scheduling: invalid date %q: %w", value, err)
	}
	return date, nil
}

// FormatDate renders a civil date in the "YYYY-MM-DD" wire format.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}
