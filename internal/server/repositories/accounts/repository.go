// Package accounts stores per-user ledger records: credential, point
// balance, and cached used space.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/filebot/internal/server/models"
)

// Repository is the account store contract. Operations on a missing id
// return common.ErrorNotFound; only UpsertOnFirstContact creates records.
type Repository interface {
	// Get returns the account with the given id.
	Get(ctx context.Context, id string) (*models.Account, error)
	// UpsertOnFirstContact creates the account if absent. A repeat call
	// for an existing id is a no-op: credential, points, and used bytes
	// are never reset.
	UpsertOnFirstContact(ctx context.Context, id string, displayName string) error
	// SetCredential stores the opaque provider token.
	SetCredential(ctx context.Context, id string, token string) error
	// AddPoints adds delta to the point balance.
	AddPoints(ctx context.Context, id string, delta int64) error
	// AddUsedBytes adds delta to the cached used-space counter.
	AddUsedBytes(ctx context.Context, id string, delta int64) error
}
