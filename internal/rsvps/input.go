package rsvps

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/utils"
)

const (
	maxNameLen    = 120
	maxEmailLen   = 120
	maxNotesLen   = 500
	maxMessageLen = 800
	maxTokenLen   = 120
)

const msgInvalidGuest = "Name and a valid email are required."

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Flag decodes the attending field leniently. Forms send it as a JSON
// boolean, a number or a string like "yes"; null and absent mean false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = false
	case bytes.Equal(data, []byte("true")):
		*f = true
	case bytes.Equal(data, []byte("false")):
		*f = false
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "y", "on", "1", "attending":
			*f = true
		default:
			*f = false
		}
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = n != 0
	}
	return nil
}

// SubmitRequest is the body for POST /api/rsvp.
type SubmitRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Attending    Flag   `json:"attending"`
	DietaryNotes string `json:"dietaryNotes"`
	Message      string `json:"message"`
}

// UpdateRequest is the body for POST /api/rsvp-update.
type UpdateRequest struct {
	Token string `json:"token"`
	SubmitRequest
}

// Clean trims and caps every field and lowercases the email. It fails when
// the name is empty or the email does not look like an address.
func (r SubmitRequest) Clean() (models.RSVPInput, error) {
	in := models.RSVPInput{
		Name:         utils.CleanString(r.Name, maxNameLen),
		Email:        strings.ToLower(utils.CleanString(r.Email, maxEmailLen)),
		Attending:    bool(r.Attending),
		DietaryNotes: utils.CleanString(r.DietaryNotes, maxNotesLen),
		Message:      utils.CleanString(r.Message, maxMessageLen),
	}
	if in.Name == "" || in.Email == "" || !emailPattern.MatchString(in.Email) {
		return models.RSVPInput{}, apperror.Input(msgInvalidGuest)
	}
	return in, nil
}

// CleanToken trims and caps an edit token.
func CleanToken(token string) string {
	return utils.CleanString(token, maxTokenLen)
}
