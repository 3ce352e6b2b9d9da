package rsvps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
	"github.com/uyenbatu/wedding-backend/pkg/utils"
)

const pgUniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository handles RSVP persistence.
type Repository struct {
	pool     DB
	table    string
	newToken func() (string, error)
}

// NewRepository creates an RSVP repository backed by table.
func NewRepository(pool DB, table string) *Repository {
	return &Repository{
		pool:     pool,
		table:    pgx.Identifier{table}.Sanitize(),
		newToken: utils.NewEditToken,
	}
}

// UpsertByEmail inserts a new RSVP or updates the one with the same email in
// place. The edit token is generated only for a new row and survives
// every later upsert. The unique email constraint settles concurrent first
// submissions: the loser of the race takes the update arm.
func (r *Repository) UpsertByEmail(ctx context.Context, in models.RSVPInput) (*models.UpsertResult, error) {
	q := fmt.Sprintf(`INSERT INTO %s (name, email, attending, guest_count, dietary_notes, message, edit_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			attending = EXCLUDED.attending,
			guest_count = EXCLUDED.guest_count,
			dietary_notes = EXCLUDED.dietary_notes,
			message = EXCLUDED.message,
			updated_at = NOW()
		RETURNING id, edit_token, (xmax = 0)`, r.table)

	// A fresh token colliding with an existing one is retried once.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		token, err := r.newToken()
		if err != nil {
			return nil, apperror.Dependency("generate edit token", err)
		}
		var res models.UpsertResult
		err = r.pool.QueryRow(ctx, q, in.Name, in.Email, in.Attending, in.GuestCount(), in.DietaryNotes, in.Message, token).
			Scan(&res.ID, &res.EditToken, &res.IsNew)
		if err == nil {
			return &res, nil
		}
		lastErr = err
		if !isUniqueViolation(err, "_edit_token_key") {
			break
		}
	}
	return nil, apperror.Dependency("upsert rsvp", lastErr)
}

// UpdateByToken overwrites the guest fields of the RSVP holding token.
func (r *Repository) UpdateByToken(ctx context.Context, token string, in models.RSVPInput) error {
	q := fmt.Sprintf(`UPDATE %s SET
			name = $2, email = $3, attending = $4, guest_count = $5,
			dietary_notes = $6, message = $7, updated_at = NOW()
		WHERE edit_token = $1
		RETURNING id`, r.table)
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, q, token, in.Name, in.Email, in.Attending, in.GuestCount(), in.DietaryNotes, in.Message).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperror.NotFound("RSVP not found.")
	case isUniqueViolation(err, "_email_key"):
		return apperror.Input("Another RSVP already uses that email.")
	case err != nil:
		return apperror.Dependency("update rsvp by token", err)
	}
	return nil
}

// FindByToken returns the guest-visible fields of the RSVP holding token.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.RSVPView, error) {
	q := fmt.Sprintf(`SELECT name, email, attending, dietary_notes, message FROM %s WHERE edit_token = $1`, r.table)
	var v models.RSVPView
	err := r.pool.QueryRow(ctx, q, token).Scan(&v.Name, &v.Email, &v.Attending, &v.DietaryNotes, &v.Message)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("RSVP not found.")
	}
	if err != nil {
		return nil, apperror.Dependency("find rsvp by token", err)
	}
	return &v, nil
}

// ListReminderCandidates returns attending guests not yet reminded.
func (r *Repository) ListReminderCandidates(ctx context.Context) ([]models.ReminderCandidate, error) {
	q := fmt.Sprintf(`SELECT id, name, email FROM %s
		WHERE attending = TRUE AND reminder_sent_at IS NULL
		ORDER BY created_at`, r.table)
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, apperror.Dependency("list reminder candidates", err)
	}
	defer rows.Close()
	var list []models.ReminderCandidate
	for rows.Next() {
		var c models.ReminderCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, apperror.Dependency("scan reminder candidate", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Dependency("list reminder candidates", err)
	}
	return list, nil
}

// MarkReminderSent stamps reminder_sent_at on every id.
func (r *Repository) MarkReminderSent(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	q := fmt.Sprintf(`UPDATE %s SET reminder_sent_at = NOW() WHERE id = ANY($1)`, r.table)
	if _, err := r.pool.Exec(ctx, q, ids); err != nil {
		return apperror.Dependency("mark reminder sent", err)
	}
	return nil
}

// MarkEmailSent stamps email_sent_at on one RSVP.
func (r *Repository) MarkEmailSent(ctx context.Context, id uuid.UUID) error {
	q := fmt.Sprintf(`UPDATE %s SET email_sent_at = NOW() WHERE id = $1`, r.table)
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return apperror.Dependency("mark email sent", err)
	}
	return nil
}

func isUniqueViolation(err error, constraintSuffix string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && strings.HasSuffix(pgErr.ConstraintName, constraintSuffix)
}
