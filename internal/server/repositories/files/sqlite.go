package files

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/google/uuid"
)

// SqliteRepository implements file-record storage over SQLite.
type SqliteRepository struct {
	db dbx.DBTX
}

// NewSqliteRepository constructs a repository bound to the given DBTX.
func NewSqliteRepository(db dbx.DBTX) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Create(ctx context.Context, record *models.FileRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO files (id, owner_id, name, content_id, size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.OwnerID, record.Name, record.ContentID, record.Size, record.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SqliteRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.FileRecord, error) {
	query := `
		SELECT id, owner_id, name, content_id, size, uploaded_at FROM files
		WHERE owner_id = ?
		ORDER BY uploaded_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		var item models.FileRecord
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.ContentID, &item.Size, &item.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tail(result, limit), nil
}

func (r *SqliteRepository) SumSizeByOwner(ctx context.Context, ownerID string) (int64, error) {
	query := `SELECT COALESCE(SUM(size), 0) FROM files WHERE owner_id = ?`

	var total int64
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}
