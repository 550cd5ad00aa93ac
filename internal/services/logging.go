package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ServiceLogger adds operation level logging on top of slog
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", service),
	}
}

func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// LogOperation logs the outcome of an operation at a level derived from err
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, attemptID string, duration time.Duration, err error, args ...any) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		if IsValidation(err) {
			level = slog.LevelWarn
			status = "validation_error"
		} else if IsNotFound(err) {
			level = slog.LevelInfo
			status = "not_found"
		}
	}

	attrs := []any{
		"operation", operation,
		"status", status,
		"duration", duration,
	}
	if attemptID != "" {
		attrs = append(attrs, "attempt_id", attemptID)
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
		if ves, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, "validation_errors_count", len(ves))
		}
	}
	attrs = append(attrs, args...)

	l.logger.Log(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// LogQuestionWarnings logs authoring problems found in a submitted question set
func (l *ServiceLogger) LogQuestionWarnings(ctx context.Context, attemptID string, warnings map[int][]string) {
	for index, issues := range warnings {
		for _, issue := range issues {
			l.logger.WarnContext(ctx, "Question will not grade as expected",
				"attempt_id", attemptID,
				"question_index", index,
				"issue", issue)
		}
	}
}
