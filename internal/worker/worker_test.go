package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/uyenbatu/wedding-backend/internal/reminders"
)

type countingJob struct {
	runs int
	err  error
}

func (j *countingJob) Run(context.Context) (reminders.Summary, error) {
	j.runs++
	return reminders.Summary{Sent: 1}, j.err
}

func TestNextRun(t *testing.T) {
	s := NewDailyScheduler(&countingJob{}, 15, nil)
	cases := []struct {
		now  string
		want string
	}{
		{now: "2026-06-17T09:30:00Z", want: "2026-06-17T15:00:00Z"},
		{now: "2026-06-17T15:00:00Z", want: "2026-06-18T15:00:00Z"},
		{now: "2026-06-17T20:00:00Z", want: "2026-06-18T15:00:00Z"},
		{now: "2026-06-30T16:00:00Z", want: "2026-07-01T15:00:00Z"},
		{now: "2026-06-17T10:00:00-06:00", want: "2026-06-18T15:00:00Z"},
	}
	for _, tc := range cases {
		now, _ := time.Parse(time.RFC3339, tc.now)
		want, _ := time.Parse(time.RFC3339, tc.want)
		if got := s.NextRun(now); !got.Equal(want) {
			t.Fatalf("%s: expected %s, got %s", tc.now, want, got)
		}
	}
}

func TestInvalidHourFallsBack(t *testing.T) {
	s := NewDailyScheduler(&countingJob{}, 42, nil)
	if s.hourUTC != 15 {
		t.Fatalf("expected fallback hour 15, got %d", s.hourUTC)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	job := &countingJob{}
	s := NewDailyScheduler(job, 15, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("scheduler did not stop after cancel")
	}
	if job.runs != 0 {
		t.Fatalf("cancelled scheduler must not fire, ran %d times", job.runs)
	}
}

func TestRunOnceSurvivesJobError(t *testing.T) {
	job := &countingJob{err: errors.New("db down")}
	s := NewDailyScheduler(job, 15, nil)
	s.RunOnce(context.Background())
	if job.runs != 1 {
		t.Fatalf("expected one run, got %d", job.runs)
	}
}
