package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
)

// LiveLedger asks the storage provider for the account's total stored size
// on every read. Self-healing against missed commits, but a failed query
// means usage is unknown, and unknown usage must reject, never pass.
type LiveLedger struct {
	client provider.Client
}

func (l *LiveLedger) Used(ctx context.Context, account *models.Account) (int64, error) {
	// Without a credential nothing can have been stored; this also keeps
	// dashboard reads working for fresh accounts.
	if !account.HasCredential() {
		return 0, nil
	}

	used, err := l.client.QueryUsage(ctx, account.Credential)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredential) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", common.ErrorUsageUnknown, err)
	}
	return used, nil
}

// CommitDelta is a no-op: the provider itself is the source of truth.
func (l *LiveLedger) CommitDelta(ctx context.Context, db dbx.DBTX, accountID string, delta int64) error {
	return nil
}
