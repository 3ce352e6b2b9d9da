package reminders

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

const (
	// LeadDays is how many days before the event reminders go out.
	LeadDays = 3
	lockKey  = "wedding:reminders:lock"
	lockTTL  = 10 * time.Minute
)

// Store lists and stamps reminder candidates.
type Store interface {
	ListReminderCandidates(ctx context.Context) ([]models.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, ids []uuid.UUID) error
}

// Sender delivers one reminder email.
type Sender interface {
	SendReminder(ctx context.Context, guest models.ReminderCandidate) error
}

// Locker guards against two runs overlapping.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error)
}

// Summary is the outcome of one run.
type Summary struct {
	DaysUntil int  `json:"daysUntil"`
	Skipped   bool `json:"skipped,omitempty"`
	Busy      bool `json:"busy,omitempty"`
	Sent      int  `json:"sent"`
	Failed    int  `json:"failed,omitempty"`
	Pending   int  `json:"pending,omitempty"`
}

// Config wires a Job. Locker is optional.
type Config struct {
	Store   Store
	Sender  Sender
	Locker  Locker
	DateISO string
	Logger  *zap.Logger
}

// Job sends the pre-event reminder to attending guests.
type Job struct {
	store   Store
	sender  Sender
	locker  Locker
	dateISO string
	clock   func() time.Time
	logger  *zap.Logger
}

// NewJob creates a reminder job.
func NewJob(cfg Config) *Job {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Job{
		store:   cfg.Store,
		sender:  cfg.Sender,
		locker:  cfg.Locker,
		dateISO: cfg.DateISO,
		clock:   time.Now,
		logger:  logger,
	}
}

// DaysUntilEvent returns the number of whole UTC calendar days from today
// to the event date (YYYY-MM-DD). Past events give negative values.
func DaysUntilEvent(today time.Time, dateISO string) (int, error) {
	event, err := time.ParseInLocation("2006-01-02", dateISO, time.UTC)
	if err != nil {
		return 0, apperror.Configuration(fmt.Sprintf("invalid event date %q", dateISO))
	}
	t := today.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(event.Sub(start).Hours() / 24)), nil
}

// Run sends reminders when the event is exactly LeadDays away. Sending is
// serial and stops at the first failure; guests reached before it are still
// stamped, the rest stay pending for the next run.
func (j *Job) Run(ctx context.Context) (Summary, error) {
	days, err := DaysUntilEvent(j.clock(), j.dateISO)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{DaysUntil: days}
	if days != LeadDays {
		summary.Skipped = true
		j.logger.Info("reminders skipped", zap.Int("days_until", days))
		return summary, nil
	}

	if j.locker != nil {
		release, ok, err := j.locker.TryLock(ctx, lockKey, lockTTL)
		if err != nil {
			return summary, apperror.Dependency("acquire reminder lock", err)
		}
		if !ok {
			summary.Skipped = true
			summary.Busy = true
			j.logger.Info("reminders already running elsewhere")
			return summary, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				j.logger.Warn("release reminder lock failed", zap.Error(err))
			}
		}()
	}

	guests, err := j.store.ListReminderCandidates(ctx)
	if err != nil {
		return summary, err
	}

	sent := make([]uuid.UUID, 0, len(guests))
	for i, g := range guests {
		if err := j.sender.SendReminder(ctx, g); err != nil {
			summary.Failed = 1
			summary.Pending = len(guests) - i - 1
			j.logger.Error("reminder send failed",
				zap.Error(err),
				zap.String("rsvp_id", g.ID.String()),
				zap.Int("pending", summary.Pending))
			break
		}
		sent = append(sent, g.ID)
	}
	summary.Sent = len(sent)

	if err := j.store.MarkReminderSent(ctx, sent); err != nil {
		return summary, err
	}
	j.logger.Info("reminders sent", zap.Int("sent", summary.Sent), zap.Int("failed", summary.Failed))
	return summary, nil
}
