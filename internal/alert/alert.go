// Package alert carries scheduling alerts to the notification collaborator.
// Delivery mechanics live outside this service; the Sink interface is the
// boundary.
package alert

import (
	"context"
	"log/slog"
)

// Severity grades an alert for the receiving notification channel.
type Severity string

const (
	// SeverityWarning marks a minor schedule disruption.
	SeverityWarning Severity = "warning"
	// SeverityCritical marks a disruption needing immediate attention.
	SeverityCritical Severity = "critical"
)

// Alert is the payload handed to the notification collaborator.
type Alert struct {
	TaskID    string   `json:"task_id"`
	ManagerID string   `json:"manager_id"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// Sink accepts alerts for delivery.
type Sink interface {
	Dispatch(ctx context.Context, a Alert) error
}

// LogSink writes alerts to the structured log. It stands in for the push
// delivery pipeline during development and in tests.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink builds a sink backed by the given logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Dispatch logs the alert.
func (s *LogSink) Dispatch(ctx context.Context, a Alert) error {
	s.logger.InfoContext(ctx, "alert dispatched",
		"task_id", a.TaskID,
		"manager_id", a.ManagerID,
		"severity", string(a.Severity),
		"message", a.Message,
	)
	return nil
}
