package rsvps

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

func TestFlagDecoding(t *testing.T) {
	cases := map[string]bool{
		`true`:    true,
		`false`:   false,
		`null`:    false,
		`1`:       true,
		`0`:       false,
		`"yes"`:   true,
		`"true"`:  true,
		`"no"`:    false,
		`"false"`: false,
		`""`:      false,
	}
	for raw, want := range cases {
		var f Flag
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if bool(f) != want {
			t.Fatalf("decode %s: expected %v, got %v", raw, want, f)
		}
	}

	var f Flag
	if err := json.Unmarshal([]byte(`{}`), &f); err == nil {
		t.Fatalf("expected an object to be rejected")
	}
}

func TestCleanTrimsCapsAndLowercases(t *testing.T) {
	req := SubmitRequest{
		Name:         "  " + strings.Repeat("n", 200) + "  ",
		Email:        "  Guest@Example.COM ",
		Attending:    true,
		DietaryNotes: strings.Repeat("d", 600),
		Message:      strings.Repeat("m", 900),
	}
	in, err := req.Clean()
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if len(in.Name) != maxNameLen {
		t.Fatalf("name not capped: %d", len(in.Name))
	}
	if in.Email != "guest@example.com" {
		t.Fatalf("email not normalised: %q", in.Email)
	}
	if len(in.DietaryNotes) != maxNotesLen || len(in.Message) != maxMessageLen {
		t.Fatalf("notes/message not capped: %d %d", len(in.DietaryNotes), len(in.Message))
	}
	if in.GuestCount() != 1 {
		t.Fatalf("expected guest count 1, got %d", in.GuestCount())
	}
}

func TestCleanRejectsInvalidGuest(t *testing.T) {
	for _, req := range []SubmitRequest{
		{Name: "", Email: "a@b.co"},
		{Name: "A", Email: ""},
		{Name: "A", Email: "a@b"},
	} {
		if _, err := req.Clean(); !apperror.Is(err, apperror.KindInput) {
			t.Fatalf("expected input error for %+v, got %v", req, err)
		}
	}
}

func TestEditURL(t *testing.T) {
	if got := EditURL("https://x.test", "abc"); got != "https://x.test/rsvp/edit?token=abc" {
		t.Fatalf("unexpected %q", got)
	}
	if got := EditURL("", "abc"); got != "/rsvp/edit?token=abc" {
		t.Fatalf("unexpected %q", got)
	}
}
