package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/server/models"
)

// MemoryRepository is an in-memory account store, safe for concurrent use.
// Used by tests and credential-less ephemeral runs.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *MemoryRepository) UpsertOnFirstContact(ctx context.Context, id string, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[id]; ok {
		return nil
	}
	r.accounts[id] = &models.Account{
		ID:          id,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	return nil
}

func (r *MemoryRepository) SetCredential(ctx context.Context, id string, token string) error {
	return r.update(id, func(a *models.Account) { a.Credential = token })
}

func (r *MemoryRepository) AddPoints(ctx context.Context, id string, delta int64) error {
	return r.update(id, func(a *models.Account) { a.Points += delta })
}

func (r *MemoryRepository) AddUsedBytes(ctx context.Context, id string, delta int64) error {
	return r.update(id, func(a *models.Account) { a.UsedBytes += delta })
}

func (r *MemoryRepository) update(id string, fn func(a *models.Account)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	fn(a)
	return nil
}
