package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/reminders"
)

const msgReminderFailed = "Unable to send reminders."

// Runner runs one reminder pass.
type Runner interface {
	Run(ctx context.Context) (reminders.Summary, error)
}

// Handler adapts the reminder job to a scheduled Lambda event.
type Handler struct {
	Job    Runner
	Logger *zap.Logger
}

// Handle runs the job once per scheduled event. The summary is the Lambda
// result; a store or configuration failure fails the invocation.
func (h Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (reminders.Summary, error) {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("reminder invocation", zap.String("event_id", event.ID), zap.Time("event_time", event.Time))

	summary, err := h.Job.Run(ctx)
	if err != nil {
		logger.Error(msgReminderFailed, zap.Error(err), zap.Int("sent", summary.Sent))
		return summary, err
	}
	return summary, nil
}
