package photos

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uyenbatu/wedding-backend/internal/models"
	"github.com/uyenbatu/wedding-backend/pkg/apperror"
)

var photoColumns = []string{"path", "original_name", "mime_type", "size_bytes", "uploader_name", "uploader_email"}

// Repository persists photo upload metadata.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository creates a photo metadata repository backed by table.
func NewRepository(pool *pgxpool.Pool, table string) *Repository {
	return &Repository{pool: pool, table: table}
}

// SaveMetadata inserts every upload in one COPY.
func (r *Repository) SaveMetadata(ctx context.Context, uploads []models.PhotoUpload) error {
	if len(uploads) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0, len(uploads))
	for _, u := range uploads {
		rows = append(rows, []interface{}{u.Path, u.OriginalName, u.MimeType, u.SizeBytes, u.UploaderName, u.UploaderEmail})
	}
	_, err := r.pool.CopyFrom(ctx, pgx.Identifier{r.table}, photoColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return apperror.Dependency("save photo metadata", err)
	}
	return nil
}
