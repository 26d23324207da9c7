// Package repomanager vends repository implementations for the configured
// storage backend and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/files"
)

// RepositoryManager binds repositories to a DBTX so that services can run
// several repository calls inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Files(db dbx.DBTX) files.Repository
}

// Open creates the database handle and matching RepositoryManager for the
// given driver ("postgres", "sqlite", or "memory"). The memory backend has
// no database handle and returns a nil *sql.DB.
func Open(driver, dsn string) (*sql.DB, RepositoryManager, error) {
	switch driver {
	case "postgres":
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		return db, NewPostgresRepositoryManager(), nil
	case "sqlite":
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		return db, NewSqliteRepositoryManager(), nil
	case "memory":
		return nil, NewMemoryRepositoryManager(), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", driver)
	}
}
