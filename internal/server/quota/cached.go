package quota

import (
	"context"

	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// CachedLedger keeps used bytes as a counter on the account row. The
// counter is written only by CommitDelta inside the commit transaction,
// which is what keeps it equal to the sum of the account's file records.
type CachedLedger struct {
	rm repomanager.RepositoryManager
}

func (l *CachedLedger) Used(ctx context.Context, account *models.Account) (int64, error) {
	return account.UsedBytes, nil
}

func (l *CachedLedger) CommitDelta(ctx context.Context, db dbx.DBTX, accountID string, delta int64) error {
	return l.rm.Accounts(db).AddUsedBytes(ctx, accountID, delta)
}
