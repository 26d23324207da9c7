package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// AccountService handles account lifecycle and credential management.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	client      provider.Client
	// probe enables eager credential validation: a provider call made
	// before the token is stored. Off by default; the provider rejects
	// bad tokens on first use either way.
	probe bool
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, client provider.Client, probeCredential bool) *AccountService {
	return &AccountService{db: db, repomanager: m, client: client, probe: probeCredential}
}

// Contact registers first contact from the chat front-end. Idempotent: a
// repeat call for a known id changes nothing.
func (s *AccountService) Contact(ctx context.Context, id string, displayName string) error {
	if err := s.repomanager.Accounts(s.db).UpsertOnFirstContact(ctx, id, displayName); err != nil {
		return fmt.Errorf("error registering account: %w", err)
	}
	return nil
}

// Get returns the account or common.ErrorNotFound.
func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).Get(ctx, id)
}

// SetCredential stores the user's provider token. The token is opaque and
// not inspected; with the probe policy enabled, a usage query must succeed
// before the token is stored.
func (s *AccountService) SetCredential(ctx context.Context, id string, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return common.ErrorInvalidCredential
	}

	if s.probe {
		if _, err := s.client.QueryUsage(ctx, token); err != nil {
			return fmt.Errorf("%w: provider rejected probe: %v", common.ErrorInvalidCredential, err)
		}
	}

	if err := s.repomanager.Accounts(s.db).SetCredential(ctx, id, token); err != nil {
		return fmt.Errorf("error storing credential: %w", err)
	}
	return nil
}
