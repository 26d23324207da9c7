package files

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is an in-memory file-record store, safe for concurrent
// use. Records keep insertion order per owner.
type MemoryRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]*models.FileRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byOwner: make(map[string][]*models.FileRecord)}
}

func (r *MemoryRepository) Create(ctx context.Context, record *models.FileRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *record
	r.byOwner[record.OwnerID] = append(r.byOwner[record.OwnerID], &clone)
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.FileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byOwner[ownerID]
	result := make([]*models.FileRecord, 0, len(records))
	for _, rec := range records {
		clone := *rec
		result = append(result, &clone)
	}
	return tail(result, limit), nil
}

func (r *MemoryRepository) SumSizeByOwner(ctx context.Context, ownerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, rec := range r.byOwner[ownerID] {
		total += rec.Size
	}
	return total, nil
}
