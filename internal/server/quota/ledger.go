// Package quota derives and maintains per-account used space against the
// fixed storage cap. Two strategies exist behind one interface: a cached
// counter maintained at commit time, and a live figure queried from the
// storage provider on demand.
package quota

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// Ledger answers how much the account has stored and records committed
// deltas. Implementations must never be combined: one strategy is picked
// at startup and used everywhere.
type Ledger interface {
	// Used returns the account's current used bytes. A failure to
	// determine usage is returned as common.ErrorUsageUnknown and must be
	// treated as a reject by upload guards.
	Used(ctx context.Context, account *models.Account) (int64, error)
	// CommitDelta records size bytes committed for the account. It runs
	// inside the upload commit transaction (db is the transaction handle).
	CommitDelta(ctx context.Context, db dbx.DBTX, accountID string, delta int64) error
}

// NewLedger builds the Ledger for the configured strategy.
func NewLedger(strategy string, rm repomanager.RepositoryManager, client provider.Client) (Ledger, error) {
	switch strategy {
	case "cached":
		return &CachedLedger{rm: rm}, nil
	case "live":
		return &LiveLedger{client: client}, nil
	default:
		return nil, fmt.Errorf("unknown quota strategy: %s", strategy)
	}
}
