// Package notify renders and sends guest notification emails.
package notify

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/uyenbatu/wedding-backend/config"
)

// Rendered is a ready-to-send email body in both formats.
type Rendered struct {
	Subject string
	Text    string
	HTML    string
}

// ConfirmationParams parameterize the RSVP confirmation email.
type ConfirmationParams struct {
	Name      string
	Attending bool
	EditURL   string
	SiteURL   string
}

// ReminderParams parameterize the pre-event reminder email.
type ReminderParams struct {
	Name    string
	SiteURL string
}

// Templates renders notification emails for one event. It has no side
// effects and holds no clients.
type Templates struct {
	event config.EventConfig
	copy  config.EmailCopy
}

// NewTemplates creates a renderer for event and its email copy.
func NewTemplates(event config.EventConfig, emailCopy config.EmailCopy) *Templates {
	return &Templates{event: event, copy: emailCopy}
}

type links struct {
	Map      string
	Calendar string
	Photo    string
	Edit     string
}

func (t *Templates) links(siteURL, editURL string) links {
	l := links{Map: t.event.Venue.MapURL, Edit: editURL}
	siteURL = strings.TrimRight(siteURL, "/")
	if siteURL != "" {
		l.Photo = siteURL + "/upload"
		l.Calendar = siteURL + "/wedding.ics"
	}
	return l
}

func greeting(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return "Hi " + name + ","
	}
	return "Hi there,"
}

// Confirmation renders the reply sent after an RSVP is saved.
func (t *Templates) Confirmation(p ConfirmationParams) (Rendered, error) {
	ev := t.event
	l := t.links(p.SiteURL, p.EditURL)
	data := emailData{
		Couple:   ev.CoupleNames,
		Greeting: greeting(p.Name),
		Event:    ev,
		Copy:     t.copy,
		Links:    l,
	}

	var text string
	if !p.Attending {
		data.Kind = "declined"
		text = joinSections(
			[]string{data.Greeting},
			[]string{declinedLine},
			[]string{optional("Update your RSVP: ", l.Edit)},
			[]string{t.copy.Closing},
			signOff(ev),
		)
	} else {
		data.Kind = "attending"
		text = joinSections(
			[]string{data.Greeting},
			[]string{t.copy.Intro},
			[]string{
				ev.Venue.Name,
				ev.Venue.Address,
				"Date: " + ev.Date,
				"Time: " + timeRange(ev),
				"Dress code: " + ev.DressCode,
			},
			append([]string{"Schedule:"}, itineraryLines(ev)...),
			[]string{
				"Map: " + l.Map,
				t.copy.Parking,
				optional("Calendar: ", l.Calendar),
				optional("Photo upload: ", l.Photo),
				optional("Update your RSVP: ", l.Edit),
			},
			[]string{t.copy.Closing},
			signOff(ev),
		)
	}

	html, err := renderHTML(data)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Subject: t.copy.Subject, Text: text, HTML: html}, nil
}

// Reminder renders the note sent a few days before the event. It never
// carries the itinerary or an edit link.
func (t *Templates) Reminder(p ReminderParams) (Rendered, error) {
	ev := t.event
	l := t.links(p.SiteURL, "")
	data := emailData{
		Kind:     "reminder",
		Couple:   ev.CoupleNames,
		Greeting: greeting(p.Name),
		Event:    ev,
		Copy:     t.copy,
		Links:    l,
	}
	text := joinSections(
		[]string{data.Greeting},
		[]string{t.copy.ReminderIntro},
		[]string{
			"Date: " + ev.Date,
			"Time: " + timeRange(ev),
			"Venue: " + ev.Venue.Name + ", " + ev.Venue.Address,
			"Dress code: " + ev.DressCode,
		},
		[]string{
			"Map: " + l.Map,
			t.copy.Parking,
			optional("Calendar: ", l.Calendar),
			optional("Photo upload: ", l.Photo),
		},
		[]string{t.copy.ReminderClosing},
		signOff(ev),
	)
	html, err := renderHTML(data)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{Subject: t.copy.ReminderSubject, Text: text, HTML: html}, nil
}

func signOff(ev config.EventConfig) []string {
	return []string{"With love,", ev.CoupleNames}
}

const declinedLine = "Thanks for letting us know you cannot make it. We will miss you."

func timeRange(ev config.EventConfig) string {
	return fmt.Sprintf("%s to %s (%s)", ev.StartTime, ev.EndTime, ev.Timezone)
}

func itineraryLines(ev config.EventConfig) []string {
	out := make([]string, 0, len(ev.Itinerary))
	for _, it := range ev.Itinerary {
		out = append(out, it.Time+" - "+it.Item)
	}
	return out
}

func optional(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

// joinSections drops empty lines and empty sections, then separates the
// remaining sections with one blank line.
func joinSections(sections ...[]string) string {
	var paragraphs []string
	for _, section := range sections {
		var kept []string
		for _, line := range section {
			if strings.TrimSpace(line) != "" {
				kept = append(kept, line)
			}
		}
		if len(kept) > 0 {
			paragraphs = append(paragraphs, strings.Join(kept, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

type emailData struct {
	Kind     string
	Couple   string
	Greeting string
	Event    config.EventConfig
	Copy     config.EmailCopy
	Links    links
}

func renderHTML(data emailData) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s email: %w", data.Kind, err)
	}
	return buf.String(), nil
}
