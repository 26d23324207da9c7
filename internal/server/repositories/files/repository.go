// Package files stores the append-only per-account list of committed uploads.
package files

import (
	"context"

	"github.com/dmitrijs2005/filebot/internal/server/models"
)

// Repository is the file-record store contract. Records are created only
// by the upload commit and are immutable afterwards.
type Repository interface {
	// Create appends a new record. Assigns record.ID when empty.
	Create(ctx context.Context, record *models.FileRecord) error
	// ListByOwner returns the owner's records in upload-time order.
	// A positive limit returns only the limit most recent records,
	// still ordered oldest first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.FileRecord, error)
	// SumSizeByOwner returns the total committed size for the owner.
	SumSizeByOwner(ctx context.Context, ownerID string) (int64, error)
}
