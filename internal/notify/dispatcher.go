package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/internal/calendar"
	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

// InviteBuilder produces the per-email calendar document.
type InviteBuilder interface {
	BuildInvite() (string, error)
}

// SentMarker stamps an RSVP once its confirmation went out.
type SentMarker interface {
	MarkEmailSent(ctx context.Context, id uuid.UUID) error
}

// LogRecorder persists the outcome of a send.
type LogRecorder interface {
	Create(ctx context.Context, log *models.EmailLog) error
}

// Confirmation identifies the RSVP a confirmation email is about.
type Confirmation struct {
	RSVPID    uuid.UUID
	Email     string
	Name      string
	Attending bool
	EditURL   string
}

// Dispatcher assembles and sends notification emails.
type Dispatcher struct {
	sender    Sender
	templates *Templates
	invites   InviteBuilder
	marker    SentMarker
	logs      LogRecorder
	from      config.EmailConfig
	siteURL   string
	clock     func() time.Time
	logger    *zap.Logger
}

// DispatcherConfig wires a Dispatcher. Marker and Logs are optional.
type DispatcherConfig struct {
	Sender    Sender
	Templates *Templates
	Invites   InviteBuilder
	Marker    SentMarker
	Logs      LogRecorder
	From      config.EmailConfig
	SiteURL   string
	Logger    *zap.Logger
}

// NewDispatcher creates a notification dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		sender:    cfg.Sender,
		templates: cfg.Templates,
		invites:   cfg.Invites,
		marker:    cfg.Marker,
		logs:      cfg.Logs,
		from:      cfg.From,
		siteURL:   cfg.SiteURL,
		clock:     time.Now,
		logger:    logger,
	}
}

// SendConfirmation emails the RSVP confirmation with the calendar attached,
// then stamps the record. A failed stamp is logged, not returned: the email
// already went out.
func (d *Dispatcher) SendConfirmation(ctx context.Context, c Confirmation) error {
	rendered, err := d.templates.Confirmation(ConfirmationParams{
		Name:      c.Name,
		Attending: c.Attending,
		EditURL:   c.EditURL,
		SiteURL:   d.siteURL,
	})
	if err != nil {
		return err
	}
	ics, err := d.invites.BuildInvite()
	if err != nil {
		return err
	}

	msg := d.message(c.Email, c.Name, rendered)
	msg.Attachments = []Attachment{{
		Filename:    calendar.Filename,
		ContentType: calendar.ContentType,
		Content:     []byte(ics),
	}}

	if err := d.send(ctx, models.EmailTypeRSVPConfirmation, rsvpRef(c.RSVPID), msg); err != nil {
		return err
	}
	if d.marker != nil && c.RSVPID != uuid.Nil {
		if err := d.marker.MarkEmailSent(ctx, c.RSVPID); err != nil {
			d.logger.Warn("mark email sent failed", zap.Error(err), zap.String("rsvp_id", c.RSVPID.String()))
		}
	}
	return nil
}

// SendReminder emails the pre-event reminder to one guest.
func (d *Dispatcher) SendReminder(ctx context.Context, guest models.ReminderCandidate) error {
	rendered, err := d.templates.Reminder(ReminderParams{Name: guest.Name, SiteURL: d.siteURL})
	if err != nil {
		return err
	}
	return d.send(ctx, models.EmailTypeReminder, rsvpRef(guest.ID), d.message(guest.Email, guest.Name, rendered))
}

// rsvpRef is the email log's RSVP reference; the zero id means none.
func rsvpRef(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func (d *Dispatcher) message(to, toName string, r Rendered) Message {
	return Message{
		To:        to,
		ToName:    toName,
		FromEmail: d.from.FromAddress,
		FromName:  d.from.FromName,
		ReplyTo:   d.from.ReplyTo,
		Subject:   r.Subject,
		Text:      r.Text,
		HTML:      r.HTML,
	}
}

func (d *Dispatcher) send(ctx context.Context, emailType string, rsvpID *uuid.UUID, msg Message) error {
	entry := &models.EmailLog{
		RSVPID:         rsvpID,
		EmailType:      emailType,
		RecipientEmail: msg.To,
		Subject:        msg.Subject,
	}
	sendErr := d.sender.Send(ctx, msg)
	if sendErr != nil {
		entry.Status = models.EmailLogStatusFailed
		entry.ErrorMessage = sendErr.Error()
		d.logger.Error("email send failed", zap.Error(sendErr), zap.String("email_type", emailType))
	} else {
		now := d.clock()
		entry.Status = models.EmailLogStatusSent
		entry.SentAt = &now
	}
	if d.logs != nil {
		if err := d.logs.Create(ctx, entry); err != nil {
			d.logger.Warn("record email log failed", zap.Error(err), zap.String("email_type", emailType))
		}
	}
	if sendErr != nil {
		var appErr *apperror.Error
		if errors.As(sendErr, &appErr) {
			return sendErr
		}
		return apperror.Dependency("email send failed", sendErr)
	}
	return nil
}
