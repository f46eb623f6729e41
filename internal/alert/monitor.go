package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/workforce-scheduler/internal/persistence"
	"github.com/example/workforce-scheduler/internal/scheduling"
)

// TaskSource provides the day's tasks for the overdue scan.
type TaskSource interface {
	ListTasksByDate(ctx context.Context, date string) ([]persistence.Task, error)
}

// Monitor periodically scans the current day's tasks and raises an alert for
// every task whose scheduled end has passed without completion. Each task is
// alerted at most once per process lifetime.
type Monitor struct {
	tasks    TaskSource
	sink     Sink
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration

	cron    *cron.Cron
	alerted map[string]struct{}
}

// NewMonitor builds an overdue-task monitor. interval controls how often the
// scan runs.
func NewMonitor(tasks TaskSource, sink Sink, logger *slog.Logger, interval time.Duration, now func() time.Time) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Monitor{
		tasks:    tasks,
		sink:     sink,
		logger:   logger,
		now:      now,
		interval: interval,
		alerted:  make(map[string]struct{}),
	}
}

// Start schedules the recurring scan. It returns an error when the schedule
// cannot be registered.
func (m *Monitor) Start() error {
	c := cron.New()
	spec := fmt.Sprintf("@every %s", m.interval)
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		m.Scan(ctx)
	}); err != nil {
		return fmt.Errorf("schedule overdue scan: %w", err)
	}
	m.cron = c
	c.Start()
	m.logger.Info("overdue monitor started", "interval", m.interval.String())
	return nil
}

// Stop halts the recurring scan and waits for a running scan to finish.
func (m *Monitor) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
	m.logger.Info("overdue monitor stopped")
}

// Scan performs a single overdue sweep for the current day.
func (m *Monitor) Scan(ctx context.Context) {
	nowAt := m.now()
	date := nowAt.Format(scheduling.DateLayout)
	tasks, err := m.tasks.ListTasksByDate(ctx, date)
	if err != nil {
		m.logger.ErrorContext(ctx, "overdue scan failed", "error", err)
		return
	}
	current := scheduling.TimeOfDay(nowAt.Hour()*60 + nowAt.Minute())
	for _, task := range tasks {
		// Delayed tasks already carry their own alert; only tasks still
		// expected to finish on schedule can go overdue.
		if task.Status == "completed" || task.Status == "delayed" {
			continue
		}
		if _, seen := m.alerted[task.ID]; seen {
			continue
		}
		if !scheduling.IsClockString(task.EndTime) {
			continue
		}
		if end := scheduling.ParseTimeOfDay(task.EndTime); end > current {
			continue
		}
		m.alerted[task.ID] = struct{}{}
		alert := Alert{
			TaskID:    task.ID,
			ManagerID: task.ManagerInitials,
			Message:   fmt.Sprintf("task %q passed its scheduled end %s without completion", task.Title, task.EndTime),
			Severity:  SeverityWarning,
		}
		if err := m.sink.Dispatch(ctx, alert); err != nil {
			m.logger.ErrorContext(ctx, "alert dispatch failed", "task_id", task.ID, "error", err)
		}
	}
}
