package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/migrations"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/files"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// SqliteRepositoryManager vends SQLite-backed repository implementations,
// for single-node deployments that want a durable ledger without Postgres.
type SqliteRepositoryManager struct{}

func NewSqliteRepositoryManager() *SqliteRepositoryManager {
	return &SqliteRepositoryManager{}
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewSqliteRepository(db)
}

// Files returns a files.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return files.NewSqliteRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SqliteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Sqlite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}
