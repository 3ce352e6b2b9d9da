package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

type guestRow struct {
	guest     models.ReminderCandidate
	attending bool
	reminded  bool
}

type memoryStore struct {
	rows    []*guestRow
	listErr error
}

func (s *memoryStore) ListReminderCandidates(context.Context) ([]models.ReminderCandidate, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.ReminderCandidate
	for _, r := range s.rows {
		if r.attending && !r.reminded {
			out = append(out, r.guest)
		}
	}
	return out, nil
}

func (s *memoryStore) MarkReminderSent(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		for _, r := range s.rows {
			if r.guest.ID == id {
				r.reminded = true
			}
		}
	}
	return nil
}

type recordingSender struct {
	sent   []string
	failOn string
}

func (s *recordingSender) SendReminder(_ context.Context, g models.ReminderCandidate) error {
	if g.Email == s.failOn {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, g.Email)
	return nil
}

type stubLocker struct {
	held     bool
	released int
}

func (l *stubLocker) TryLock(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	if l.held {
		return nil, false, nil
	}
	l.held = true
	return func(context.Context) error {
		l.held = false
		l.released++
		return nil
	}, true, nil
}

func newStore() *memoryStore {
	row := func(email string, attending, reminded bool) *guestRow {
		return &guestRow{guest: models.ReminderCandidate{ID: uuid.New(), Name: "Guest", Email: email}, attending: attending, reminded: reminded}
	}
	return &memoryStore{rows: []*guestRow{
		row("a@example.com", true, false),
		row("b@example.com", false, false),
		row("c@example.com", true, true),
		row("d@example.com", true, false),
	}}
}

func fixedClock(day string) func() time.Time {
	return func() time.Time {
		t, _ := time.Parse(time.RFC3339, day+"T15:00:00Z")
		return t
	}
}

func TestDaysUntilEvent(t *testing.T) {
	cases := []struct {
		today string
		want  int
	}{
		{today: "2026-06-17T00:00:00Z", want: 3},
		{today: "2026-06-17T23:59:59Z", want: 3},
		{today: "2026-06-18T01:00:00+05:00", want: 3},
		{today: "2026-06-20T12:00:00Z", want: 0},
		{today: "2026-06-22T12:00:00Z", want: -2},
		{today: "2026-03-01T12:00:00Z", want: 111},
	}
	for _, tc := range cases {
		today, err := time.Parse(time.RFC3339, tc.today)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.today, err)
		}
		got, err := DaysUntilEvent(today, "2026-06-20")
		if err != nil {
			t.Fatalf("days until: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.today, tc.want, got)
		}
	}

	if _, err := DaysUntilEvent(time.Now(), "June 20"); !apperror.Is(err, apperror.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunSkipsOffDays(t *testing.T) {
	sender := &recordingSender{}
	job := NewJob(Config{Store: newStore(), Sender: sender, DateISO: "2026-06-20"})
	job.clock = fixedClock("2026-06-16")

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Skipped || summary.DaysUntil != 4 {
		t.Fatalf("expected skip at 4 days, got %+v", summary)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("nothing should be sent on an off day")
	}
}

func TestRunSendsOnceToAttendingGuests(t *testing.T) {
	store := newStore()
	sender := &recordingSender{}
	locker := &stubLocker{}
	job := NewJob(Config{Store: store, Sender: sender, Locker: locker, DateISO: "2026-06-20"})
	job.clock = fixedClock("2026-06-17")

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Sent != 2 || summary.Skipped {
		t.Fatalf("expected two sends, got %+v", summary)
	}
	if len(sender.sent) != 2 || sender.sent[0] != "a@example.com" || sender.sent[1] != "d@example.com" {
		t.Fatalf("unexpected recipients %v", sender.sent)
	}
	if locker.released != 1 || locker.held {
		t.Fatalf("lock must be released after the run")
	}

	summary, err = job.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Sent != 0 || len(sender.sent) != 2 {
		t.Fatalf("second run must send to nobody, got %+v", summary)
	}
}

func TestRunPartialFailureStampsEarlierSends(t *testing.T) {
	store := newStore()
	sender := &recordingSender{failOn: "d@example.com"}
	job := NewJob(Config{Store: store, Sender: sender, DateISO: "2026-06-20"})
	job.clock = fixedClock("2026-06-17")

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("a partial batch is not fatal: %v", err)
	}
	if summary.Sent != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !store.rows[0].reminded || store.rows[3].reminded {
		t.Fatalf("only the delivered guest may be stamped")
	}

	sender.failOn = ""
	summary, err = job.Run(context.Background())
	if err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if summary.Sent != 1 || sender.sent[len(sender.sent)-1] != "d@example.com" {
		t.Fatalf("retry must finish the remaining guest, got %+v %v", summary, sender.sent)
	}
}

func TestRunBusyWhenLockHeld(t *testing.T) {
	sender := &recordingSender{}
	job := NewJob(Config{Store: newStore(), Sender: sender, Locker: &stubLocker{held: true}, DateISO: "2026-06-20"})
	job.clock = fixedClock("2026-06-17")

	summary, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Busy || len(sender.sent) != 0 {
		t.Fatalf("expected busy skip, got %+v", summary)
	}
}

func TestRunListFailure(t *testing.T) {
	store := newStore()
	store.listErr = apperror.Dependency("list reminder candidates", errors.New("db down"))
	job := NewJob(Config{Store: store, Sender: &recordingSender{}, DateISO: "2026-06-20"})
	job.clock = fixedClock("2026-06-17")

	if _, err := job.Run(context.Background()); !apperror.Is(err, apperror.KindDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
