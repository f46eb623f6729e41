package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/workforce-scheduler/internal/scheduling"
)

// Config captures environment driven configuration values for the scheduler service.
type Config struct {
	HTTPPort            int
	SQLiteDSN           string
	ShiftMinutes        int
	FixedEvents         []scheduling.FixedEvent
	OverdueScanInterval time.Duration
}

// defaultFixedEvents blocks the store-wide meeting and training windows that
// every task must be checked against.
var defaultFixedEvents = []scheduling.FixedEvent{
	{
		Title: "Morning Meeting",
		Interval: scheduling.Interval{
			Start: scheduling.ParseTimeOfDay("09:00"),
			End:   scheduling.ParseTimeOfDay("10:00"),
		},
	},
	{
		Title: "Training",
		Interval: scheduling.Interval{
			Start: scheduling.ParseTimeOfDay("16:30"),
			End:   scheduling.ParseTimeOfDay("18:00"),
		},
	},
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields and reports every
// invalid entry in a single error.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:            8080,
		SQLiteDSN:           "file:scheduler.db?_foreign_keys=on",
		ShiftMinutes:        480,
		FixedEvents:         append([]scheduling.FixedEvent(nil), defaultFixedEvents...),
		OverdueScanInterval: 5 * time.Minute,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if shiftValue := strings.TrimSpace(os.Getenv("SCHEDULER_SHIFT_MINUTES")); shiftValue != "" {
		shift, err := strconv.Atoi(shiftValue)
		if err != nil || shift <= 0 {
			invalid = append(invalid, "SCHEDULER_SHIFT_MINUTES")
		} else {
			cfg.ShiftMinutes = shift
		}
	}

	if eventsValue := strings.TrimSpace(os.Getenv("SCHEDULER_FIXED_EVENTS")); eventsValue != "" {
		events, err := parseFixedEvents(eventsValue)
		if err != nil {
			invalid = append(invalid, "SCHEDULER_FIXED_EVENTS")
		} else {
			cfg.FixedEvents = events
		}
	}

	if intervalValue := strings.TrimSpace(os.Getenv("SCHEDULER_OVERDUE_SCAN_INTERVAL")); intervalValue != "" {
		interval, err := time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			invalid = append(invalid, "SCHEDULER_OVERDUE_SCAN_INTERVAL")
		} else {
			cfg.OverdueScanInterval = interval
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// parseFixedEvents parses a semicolon separated list of fixed daily blocks in
// the form "HH:MM-HH:MM=Title". An empty list is allowed and disables the
// default blocks.
func parseFixedEvents(raw string) ([]scheduling.FixedEvent, error) {
	entries := strings.Split(raw, ";")
	events := make([]scheduling.FixedEvent, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		window, title, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(title) == "" {
			return nil, fmt.Errorf("malformed fixed event %q", entry)
		}

		startValue, endValue, ok := strings.Cut(window, "-")
		if !ok {
			return nil, fmt.Errorf("malformed fixed event window %q", window)
		}
		startValue = strings.TrimSpace(startValue)
		endValue = strings.TrimSpace(endValue)
		if !scheduling.IsClockString(startValue) || !scheduling.IsClockString(endValue) {
			return nil, fmt.Errorf("malformed fixed event window %q", window)
		}

		start := scheduling.ParseTimeOfDay(startValue)
		end := scheduling.ParseTimeOfDay(endValue)
		if end <= start {
			return nil, fmt.Errorf("fixed event window %q ends before it starts", window)
		}

		events = append(events, scheduling.FixedEvent{
			Title:    strings.TrimSpace(title),
			Interval: scheduling.Interval{Start: start, End: end},
		})
	}
	return events, nil
}
