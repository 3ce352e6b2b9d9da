// Package calendar renders the wedding as an iCalendar (RFC 5545) VEVENT.
//
// Two variants exist: BuildInvite, attached to every confirmation email with
// a random UID, and BuildStatic, written once at build time with a UID derived
// from the couple's names so repeated builds replace the same calendar entry.
package calendar

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/uyenbatu/wedding-backend/config"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/utils"
)

const (
	crlf          = "\r\n"
	maxLineOctets = 75
	localLayout   = "20060102T150405"
	stampLayout   = "20060102T150405Z"

	// Filename is the attachment and public file name.
	Filename = "wedding.ics"
	// ContentType is the MIME type of the document.
	ContentType = "text/calendar"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Builder renders calendar documents for one event.
type Builder struct {
	event     config.EventConfig
	uidDomain string
	clock     func() time.Time
	suffix    func() (string, error)
}

// NewBuilder creates a Builder. An empty uidDomain becomes example.com.
func NewBuilder(event config.EventConfig, uidDomain string) *Builder {
	if uidDomain == "" {
		uidDomain = "example.com"
	}
	return &Builder{
		event:     event,
		uidDomain: uidDomain,
		clock:     time.Now,
		suffix:    func() (string, error) { return utils.RandomBase36(8) },
	}
}

// WithClock overrides the DTSTAMP source.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// BuildInvite renders the per-email document with a random UID.
func (b *Builder) BuildInvite() (string, error) {
	span, err := b.span()
	if err != nil {
		return "", err
	}
	suffix, err := b.suffix()
	if err != nil {
		return "", fmt.Errorf("calendar uid suffix: %w", err)
	}
	uid := fmt.Sprintf("%s-%s@%s", span.dateCompact, suffix, b.uidDomain)
	return b.render(uid, span), nil
}

// BuildStatic renders the build-time document with a UID stable across builds.
func (b *Builder) BuildStatic() (string, error) {
	span, err := b.span()
	if err != nil {
		return "", err
	}
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(b.event.CoupleNames), "-"), "-")
	if slug == "" {
		slug = "wedding"
	}
	uid := fmt.Sprintf("%s-%s@%s", slug, span.dateCompact, b.uidDomain)
	return b.render(uid, span), nil
}

// WriteStatic renders BuildStatic and writes it to path, creating parent directories.
func (b *Builder) WriteStatic(path string) (string, error) {
	doc, err := b.BuildStatic()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return doc, nil
}

type eventSpan struct {
	dateCompact string
	start       string
	end         string
}

// span validates every field the document needs and resolves local start/end.
func (b *Builder) span() (eventSpan, error) {
	ev := b.event
	required := []struct {
		name, value string
	}{
		{"coupleNames", ev.CoupleNames},
		{"dateISO", ev.DateISO},
		{"startTime24", ev.StartTime24},
		{"endTime24", ev.EndTime24},
		{"timezone", ev.Timezone},
		{"venue.name", ev.Venue.Name},
		{"venue.address", ev.Venue.Address},
		{"dressCode", ev.DressCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return eventSpan{}, apperror.Configuration("missing event." + r.name + " for calendar generation")
		}
	}

	loc, err := time.LoadLocation(ev.Timezone)
	if err != nil {
		return eventSpan{}, apperror.Configuration("invalid event.timezone " + ev.Timezone)
	}
	day, err := time.ParseInLocation("2006-01-02", ev.DateISO, loc)
	if err != nil {
		return eventSpan{}, apperror.Configuration("invalid event.dateISO " + ev.DateISO)
	}
	start, err := atClock(day, ev.StartTime24)
	if err != nil {
		return eventSpan{}, apperror.Configuration("invalid event.startTime24 " + ev.StartTime24)
	}
	end, err := atClock(day, ev.EndTime24)
	if err != nil {
		return eventSpan{}, apperror.Configuration("invalid event.endTime24 " + ev.EndTime24)
	}
	if !end.After(start) {
		end = atSameClockNextDay(day, end)
	}
	return eventSpan{
		dateCompact: day.Format("20060102"),
		start:       start.Format(localLayout),
		end:         end.Format(localLayout),
	}, nil
}

func atClock(day time.Time, clock string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err = time.Parse(layout, clock); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location()), nil
}

func atSameClockNextDay(day, t time.Time) time.Time {
	next := day.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location())
}

func (b *Builder) render(uid string, span eventSpan) string {
	ev := b.event
	tz := EscapeText(ev.Timezone)
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + EscapeText(ev.CoupleNames) + " Wedding//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + EscapeText(uid),
		"DTSTAMP:" + b.clock().UTC().Format(stampLayout),
		"DTSTART;TZID=" + tz + ":" + span.start,
		"DTEND;TZID=" + tz + ":" + span.end,
		"SUMMARY:" + EscapeText(ev.CoupleNames+" Wedding"),
		"LOCATION:" + EscapeText(ev.Venue.Name+", "+ev.Venue.Address),
		"DESCRIPTION:" + EscapeText("Dress code: "+ev.DressCode+"."),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(fold(line))
		sb.WriteString(crlf)
	}
	return sb.String()
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\n", `\n`,
	",", `\,`,
	";", `\;`,
)

// EscapeText applies iCalendar TEXT escaping.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// fold splits a content line into 75-octet chunks joined by CRLF + space,
// never inside a UTF-8 sequence.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}
	var sb strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString(crlf + " ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	sb.WriteString(line)
	return sb.String()
}
