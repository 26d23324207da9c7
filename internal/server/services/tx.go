package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filebot/internal/dbx"
)

// inTx runs fn transactionally when a SQL database is present. The memory
// backend has no database handle (db == nil); its repositories apply each
// call atomically on their own, so fn runs directly against them.
func inTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}
