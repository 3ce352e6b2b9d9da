package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVP is a guest's reply. Email is the natural key; EditToken is the
// bearer capability for self-service edits and never changes.
type RSVP struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Attending      bool       `json:"attending"`
	GuestCount     int        `json:"guest_count"`
	DietaryNotes   string     `json:"dietary_notes"`
	Message        string     `json:"message"`
	EditToken      string     `json:"-"`
	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
	EmailSentAt    *time.Time `json:"email_sent_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RSVPInput is the cleaned set of guest-editable fields.
type RSVPInput struct {
	Name         string
	Email        string
	Attending    bool
	DietaryNotes string
	Message      string
}

// GuestCount is 1 for an attending guest, 0 otherwise.
func (in RSVPInput) GuestCount() int {
	if in.Attending {
		return 1
	}
	return 0
}

// UpsertResult reports the outcome of an upsert-by-email.
type UpsertResult struct {
	ID        uuid.UUID
	EditToken string
	IsNew     bool
}

// RSVPView is the projection returned to a token holder.
type RSVPView struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Attending    bool   `json:"attending"`
	DietaryNotes string `json:"dietaryNotes"`
	Message      string `json:"message"`
}

// ReminderCandidate is an attending guest who has not been reminded yet.
type ReminderCandidate struct {
	ID    uuid.UUID
	Name  string
	Email string
}
