package models

import (
	"time"

	"github.com/google/uuid"
)

// EmailType of a notification.
const (
	EmailTypeRSVPConfirmation = "rsvp_confirmation"
	EmailTypeReminder         = "reminder"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusSent   = "sent"
	EmailLogStatusFailed = "failed"
)

// EmailLog records the outcome of one notification send.
type EmailLog struct {
	ID             uuid.UUID  `json:"id"`
	RSVPID         *uuid.UUID `json:"rsvp_id,omitempty"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
