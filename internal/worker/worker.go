package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/reminders"
)

// ReminderRunner is the job the scheduler fires.
type ReminderRunner interface {
	Run(ctx context.Context) (reminders.Summary, error)
}

// DailyScheduler fires a reminder run once a day at a fixed UTC hour.
type DailyScheduler struct {
	job     ReminderRunner
	hourUTC int
	clock   func() time.Time
	logger  *zap.Logger
}

// NewDailyScheduler creates a scheduler firing at hourUTC (0-23).
func NewDailyScheduler(job ReminderRunner, hourUTC int, logger *zap.Logger) *DailyScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 15
	}
	return &DailyScheduler{job: job, hourUTC: hourUTC, clock: time.Now, logger: logger}
}

// NextRun returns the first instant at hourUTC strictly after now.
func (s *DailyScheduler) NextRun(now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is cancelled, firing the job at each scheduled time.
// A failed run is logged; the next day's run picks up whatever is pending.
func (s *DailyScheduler) Run(ctx context.Context) {
	for {
		next := s.NextRun(s.clock())
		s.logger.Info("next reminder run scheduled", zap.Time("at", next))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("reminder worker stopping")
			return
		case <-timer.C:
		}
		s.RunOnce(ctx)
	}
}

// RunOnce fires the job immediately and logs its outcome.
func (s *DailyScheduler) RunOnce(ctx context.Context) {
	summary, err := s.job.Run(ctx)
	if err != nil {
		s.logger.Error("reminder run failed", zap.Error(err), zap.Int("sent", summary.Sent))
		return
	}
	s.logger.Info("reminder run finished",
		zap.Int("days_until", summary.DaysUntil),
		zap.Bool("skipped", summary.Skipped),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed))
}
