package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// PointsService maintains the loyalty-point balance. It holds no state of
// its own: points live on the account row.
type PointsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPointsService constructs a PointsService over the given repositories.
func NewPointsService(db *sql.DB, m repomanager.RepositoryManager) *PointsService {
	return &PointsService{db: db, repomanager: m}
}

// Award adds amount to the account's balance. It is called by the upload
// orchestrator inside the commit transaction (db is the transaction
// handle), exactly once per committed upload.
func (s *PointsService) Award(ctx context.Context, db dbx.DBTX, accountID string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative point award %d", common.ErrorInternal, amount)
	}
	if err := s.repomanager.Accounts(db).AddPoints(ctx, accountID, amount); err != nil {
		return fmt.Errorf("error awarding points: %w", err)
	}
	return nil
}

// GetPoints returns the account's balance, 0 for an unknown account.
func (s *PointsService) GetPoints(ctx context.Context, accountID string) (int64, error) {
	account, err := s.repomanager.Accounts(s.db).Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("error getting account: %w", err)
	}
	return account.Points, nil
}
