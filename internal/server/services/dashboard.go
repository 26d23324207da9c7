package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/quota"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// DashboardService composes the account and file-record stores into a
// read-only summary. It never mutates state.
type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	ledger      quota.Ledger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager, ledger quota.Ledger) *DashboardService {
	return &DashboardService{db: db, repomanager: m, ledger: ledger}
}

// Summarize returns the account's dashboard view. An unknown account is
// common.ErrorNotFound, distinct from an existing account with zero usage.
// A positive limit bounds the file list to the limit most recent uploads.
func (s *DashboardService) Summarize(ctx context.Context, accountID string, limit int) (*models.DashboardView, error) {
	account, err := s.repomanager.Accounts(s.db).Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	records, err := s.repomanager.Files(s.db).ListByOwner(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	if records == nil {
		records = []*models.FileRecord{}
	}

	used, err := s.ledger.Used(ctx, account)
	if err != nil {
		return nil, err
	}

	return &models.DashboardView{
		AccountID:   account.ID,
		DisplayName: account.DisplayName,
		Points:      account.Points,
		UsedBytes:   used,
		QuotaBytes:  common.StorageQuotaBytes,
		UsedPercent: float64(used) / float64(common.StorageQuotaBytes) * 100,
		Files:       records,
	}, nil
}
