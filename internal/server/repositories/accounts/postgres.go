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

// PostgresRepository implements the account store over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	query :=
		`SELECT id, display_name, credential, points, used_bytes, created_at FROM accounts
		 WHERE id = $1
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

func (r *PostgresRepository) UpsertOnFirstContact(ctx context.Context, id string, displayName string) error {
	query :=
		`INSERT INTO accounts (id, display_name)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, id, displayName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetCredential(ctx context.Context, id string, token string) error {
	query := `UPDATE accounts SET credential = $1 WHERE id = $2`
	return r.execOnExisting(ctx, query, token, id)
}

func (r *PostgresRepository) AddPoints(ctx context.Context, id string, delta int64) error {
	query := `UPDATE accounts SET points = points + $1 WHERE id = $2`
	return r.execOnExisting(ctx, query, delta, id)
}

func (r *PostgresRepository) AddUsedBytes(ctx context.Context, id string, delta int64) error {
	query := `UPDATE accounts SET used_bytes = used_bytes + $1 WHERE id = $2`
	return r.execOnExisting(ctx, query, delta, id)
}

// execOnExisting runs an UPDATE that must touch exactly one existing row.
func (r *PostgresRepository) execOnExisting(ctx context.Context, query string, args ...any) error {
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
