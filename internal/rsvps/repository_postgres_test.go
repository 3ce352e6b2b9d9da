package rsvps

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/database"
)

// newPostgresRepository creates throwaway tables in TEST_DATABASE_URL and
// skips when it is unset.
func newPostgresRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, dsn, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	suffix := time.Now().UnixNano()
	tables := database.Tables{
		RSVPTable:  fmt.Sprintf("rsvps_test_%d", suffix),
		PhotoTable: fmt.Sprintf("photos_test_%d", suffix),
	}
	statements, err := database.Render(tables)
	if err != nil {
		t.Fatalf("render migrations: %v", err)
	}
	// Only the schema file; the email log table is shared and keyed to the
	// real RSVP table.
	if _, err := pool.Exec(ctx, statements[0]); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), fmt.Sprintf("DROP TABLE IF EXISTS %s, %s", tables.RSVPTable, tables.PhotoTable))
	})
	return NewRepository(pool, tables.RSVPTable)
}

func TestPostgresUpsertKeepsTokenAndOverwrites(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	first, err := repo.UpsertByEmail(ctx, guest)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !first.IsNew {
		t.Fatalf("first submission must create a row")
	}

	changed := guest
	changed.Name = "Lan Nguyen"
	changed.Attending = false
	second, err := repo.UpsertByEmail(ctx, changed)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.IsNew || second.ID != first.ID || second.EditToken != first.EditToken {
		t.Fatalf("resubmission must update in place: first %+v second %+v", first, second)
	}

	view, err := repo.FindByToken(ctx, first.EditToken)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if view.Name != "Lan Nguyen" || view.Attending {
		t.Fatalf("expected overwritten fields, got %+v", view)
	}
}

func TestPostgresUpdateAndLookupByToken(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	if err := repo.UpdateByToken(ctx, "no-such-token", guest); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.FindByToken(ctx, "no-such-token"); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	a, err := repo.UpsertByEmail(ctx, guest)
	if err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	other := guest
	other.Email = "minh@example.com"
	if _, err := repo.UpsertByEmail(ctx, other); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	moved := guest
	moved.Email = "minh@example.com"
	if err := repo.UpdateByToken(ctx, a.EditToken, moved); !apperror.Is(err, apperror.KindInput) {
		t.Fatalf("expected taken email to be an input error, got %v", err)
	}

	updated := guest
	updated.Message = "Changed plans"
	if err := repo.UpdateByToken(ctx, a.EditToken, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	view, err := repo.FindByToken(ctx, a.EditToken)
	if err != nil || view.Message != "Changed plans" {
		t.Fatalf("expected updated message, got %+v err %v", view, err)
	}
}

func TestPostgresReminderCandidates(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()

	going, err := repo.UpsertByEmail(ctx, guest)
	if err != nil {
		t.Fatalf("upsert attending: %v", err)
	}
	declined := guest
	declined.Email = "no@example.com"
	declined.Attending = false
	if _, err := repo.UpsertByEmail(ctx, declined); err != nil {
		t.Fatalf("upsert declined: %v", err)
	}

	list, err := repo.ListReminderCandidates(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != going.ID {
		t.Fatalf("expected only the attending guest, got %+v", list)
	}

	if err := repo.MarkReminderSent(ctx, []uuid.UUID{going.ID}); err != nil {
		t.Fatalf("mark: %v", err)
	}
	list, err = repo.ListReminderCandidates(ctx)
	if err != nil {
		t.Fatalf("list after mark: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("reminded guests must not be listed again, got %+v", list)
	}
}
