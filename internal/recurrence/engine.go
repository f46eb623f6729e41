package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Frequency represents supported recurrence rule types.
type Frequency int

const (
	// FrequencyUnspecified indicates the rule type is not set.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily matches every date in the active range.
	FrequencyDaily
	// FrequencyWeekly matches the selected weekdays, or every date when no
	// weekdays are selected.
	FrequencyWeekly
	// FrequencyWeekdays matches Monday through Friday.
	FrequencyWeekdays
	// FrequencyCustom matches only explicitly selected weekdays.
	FrequencyCustom
)

// ErrInvalidFrequency indicates the recurrence frequency is not supported.
var ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

// ErrInvalidWindow indicates the expansion window is unbounded.
var ErrInvalidWindow = errors.New("recurrence: expansion window requires an end bound")

// ParseFrequency maps a wire-format recurrence type to a Frequency.
func ParseFrequency(value string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	case "weekdays":
		return FrequencyWeekdays, nil
	case "custom":
		return FrequencyCustom, nil
	default:
		return FrequencyUnspecified, fmt.Errorf("%w: %q", ErrInvalidFrequency, value)
	}
}

// String renders the frequency in its wire format.
func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyWeekdays:
		return "weekdays"
	case FrequencyCustom:
		return "custom"
	default:
		return "unspecified"
	}
}

// Rule describes a recurrence configuration for an event. StartsOn and EndsOn
// are civil dates; a nil EndsOn leaves the rule open-ended.
type Rule struct {
	ID        string
	EventID   string
	Frequency Frequency
	Weekdays  []time.Weekday
	StartsOn  time.Time
	EndsOn    *time.Time
}

// AppliesOn reports whether the rule generates an occurrence on the given
// civil date. The date must fall inside [StartsOn, EndsOn] (EndsOn
// inclusive) and satisfy the frequency's weekday selection:
//
//   - daily: every date; an optional weekday list narrows it.
//   - weekly: date's weekday is in the list; an empty list matches every date.
//   - weekdays: Monday through Friday.
//   - custom: date's weekday is in the list; an empty list never matches.
func AppliesOn(rule Rule, date time.Time) (bool, error) {
	day := civil(date)

	if day.Before(civil(rule.StartsOn)) {
		return false, nil
	}
	if rule.EndsOn != nil && day.After(civil(*rule.EndsOn)) {
		return false, nil
	}

	return matchesWeekday(rule.Frequency, weekdaySet(rule.Weekdays), day.Weekday())
}

// DatesInRange expands the rule into the concrete dates it applies to within
// [rangeStart, rangeEnd], both inclusive civil dates. The window must be
// bounded by rangeEnd or the rule's EndsOn.
func DatesInRange(rule Rule, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	lower := civil(rule.StartsOn)
	if start := civil(rangeStart); start.After(lower) {
		lower = start
	}

	upper := civil(rangeEnd)
	if upper.IsZero() {
		if rule.EndsOn == nil {
			return nil, ErrInvalidWindow
		}
		upper = civil(*rule.EndsOn)
	} else if rule.EndsOn != nil {
		if end := civil(*rule.EndsOn); end.Before(upper) {
			upper = end
		}
	}

	if lower.After(upper) {
		return nil, nil
	}

	set := weekdaySet(rule.Weekdays)
	dates := make([]time.Time, 0)
	for current := lower; !current.After(upper); current = current.AddDate(0, 0, 1) {
		include, err := matchesWeekday(rule.Frequency, set, current.Weekday())
		if err != nil {
			return nil, err
		}
		if include {
			dates = append(dates, current)
		}
	}

	if len(dates) == 0 {
		return nil, nil
	}
	return dates, nil
}

func civil(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdaySet(weekdays []time.Weekday) map[time.Weekday]struct{} {
	set := make(map[time.Weekday]struct{}, len(weekdays))
	for _, day := range weekdays {
		set[day] = struct{}{}
	}
	return set
}

func matchesWeekday(freq Frequency, set map[time.Weekday]struct{}, day time.Weekday) (bool, error) {
	switch freq {
	case FrequencyDaily:
		// A stray day list on a daily rule is ignored; only weekly and
		// custom rules are narrowed by their day list.
		return true, nil
	case FrequencyWeekly:
		if len(set) == 0 {
			return true, nil
		}
		_, ok := set[day]
		return ok, nil
	case FrequencyWeekdays:
		return day >= time.Monday && day <= time.Friday, nil
	case FrequencyCustom:
		if len(set) == 0 {
			return false, nil
		}
		_, ok := set[day]
		return ok, nil
	case FrequencyUnspecified:
		fallthrough
	default:
		return false, ErrInvalidFrequency
	}
}
