package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/models"
)

// SqliteRepository implements the account store over SQLite. Same contract
// as the Postgres flavor, with ?-style placeholders.
type SqliteRepository struct {
	db dbx.DBTX
}

// NewSqliteRepository constructs a repository bound to the given DBTX.
func NewSqliteRepository(db dbx.DBTX) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, display_name, credential, points, used_bytes, created_at FROM accounts
		 WHERE id = ?
		 `

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.DisplayName, &a.Credential, &a.Points, &a.UsedBytes, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SqliteRepository) UpsertOnFirstContact(ctx context.Context, id string, displayName string) error {
	query :=
		`INSERT INTO accounts (id, display_name)
		 VALUES (?, ?)
		 ON CONFLICT (id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, id, displayName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SqliteRepository) SetCredential(ctx context.Context, id string, token string) error {
	query := `UPDATE accounts SET credential = ? WHERE id = ?`
	return r.execOnExisting(ctx, query, token, id)
}

func (r *SqliteRepository) AddPoints(ctx context.Context, id string, delta int64) error {
	query := `UPDATE accounts SET points = points + ? WHERE id = ?`
	return r.execOnExisting(ctx, query, delta, id)
}

func (r *SqliteRepository) AddUsedBytes(ctx context.Context, id string, delta int64) error {
	query := `UPDATE accounts SET used_bytes = used_bytes + ? WHERE id = ?`
	return r.execOnExisting(ctx, query, delta, id)
}

func (r *SqliteRepository) execOnExisting(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
