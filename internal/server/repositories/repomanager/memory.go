package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/files"
)

// MemoryRepositoryManager vends shared in-memory repositories. The DBTX
// argument is ignored: there is no SQL database underneath, and callers
// must not expect transactional rollback from this backend.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	files    *files.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		files:    files.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return m.files
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
