package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/filebot/internal/common"
	"github.com/dmitrijs2005/filebot/internal/dbx"
	"github.com/dmitrijs2005/filebot/internal/filex"
	"github.com/dmitrijs2005/filebot/internal/logging"
	"github.com/dmitrijs2005/filebot/internal/server/models"
	"github.com/dmitrijs2005/filebot/internal/server/provider"
	"github.com/dmitrijs2005/filebot/internal/server/quota"
	"github.com/dmitrijs2005/filebot/internal/server/repositories/repomanager"
)

// UploadState names a position in the upload state machine. Transitions
// are strictly sequential; there is no concurrency within one upload.
type UploadState string

const (
	StateReceived          UploadState = "RECEIVED"
	StateSizeChecked       UploadState = "SIZE_CHECKED"
	StateCredentialChecked UploadState = "CREDENTIAL_CHECKED"
	StateQuotaChecked      UploadState = "QUOTA_CHECKED"
	StateTransferred       UploadState = "TRANSFERRED"
	StateCommitted         UploadState = "COMMITTED"

	StateRejectedSize         UploadState = "REJECTED_SIZE"
	StateRejectedNoCredential UploadState = "REJECTED_NO_CREDENTIAL"
	StateRejectedQuota        UploadState = "REJECTED_QUOTA"
	StateTransferFailed       UploadState = "TRANSFER_FAILED"
)

// UploadRequest is one FileSubmitted event from the chat front-end.
type UploadRequest struct {
	AccountID string
	// Name is the original filename as supplied by the user.
	Name string
	// Size is the byte size declared by the front-end at receipt time.
	Size int64
	// Open yields the byte source. It is called only after the size,
	// credential, and quota guards pass, so rejected uploads never pull
	// a single byte from the platform.
	Open func(ctx context.Context) (io.ReadCloser, error)
}

// UploadResult reports where the state machine stopped.
type UploadResult struct {
	State     UploadState
	ContentID string
}

// UploadService drives one upload through validation, transfer, and the
// atomic commit of file record, used-bytes delta, and point award. It is
// single-shot: no step is retried, the user resubmits on failure.
type UploadService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	client          provider.Client
	ledger          quota.Ledger
	points          *PointsService
	notifier        Notifier
	logger          logging.Logger
	locks           *accountLocks
	transferTimeout time.Duration
}

// NewUploadService constructs the orchestrator.
func NewUploadService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	client provider.Client,
	ledger quota.Ledger,
	points *PointsService,
	notifier Notifier,
	logger logging.Logger,
	transferTimeout time.Duration,
) *UploadService {
	return &UploadService{
		db:              db,
		repomanager:     m,
		client:          client,
		ledger:          ledger,
		points:          points,
		notifier:        notifier,
		logger:          logger.With("module", "upload"),
		locks:           newAccountLocks(),
		transferTimeout: transferTimeout,
	}
}

// Upload runs the state machine for one FileSubmitted event. The returned
// error matches the common sentinel for the guard that failed; the result
// carries the terminal state. Every terminal state notifies the user.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	name := filex.SanitizeFileName(req.Name)
	res := &UploadResult{State: StateReceived}
	log := s.logger.With("account_id", req.AccountID, "file", name, "size", req.Size)

	// RECEIVED -> SIZE_CHECKED: declared size only, nothing downloaded yet.
	if req.Size > common.MaxFileSizeBytes {
		return s.fail(ctx, log, res, req.AccountID, StateRejectedSize, common.ErrorFileTooLarge,
			fmt.Sprintf("❌ Upload rejected: %s is larger than the 100 MiB per-file limit.", name))
	}
	res.State = StateSizeChecked

	// The account lock covers everything from the credential check to the
	// commit, so a concurrent upload cannot see a stale quota.
	unlock := s.locks.Lock(req.AccountID)
	defer unlock()

	account, err := s.repomanager.Accounts(s.db).Get(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.fail(ctx, log, res, req.AccountID, StateRejectedNoCredential, common.ErrorNotFound,
				"❌ Unknown account. Send /start first.")
		}
		return nil, fmt.Errorf("error getting account: %w", err)
	}

	// SIZE_CHECKED -> CREDENTIAL_CHECKED
	if !account.HasCredential() {
		return s.fail(ctx, log, res, req.AccountID, StateRejectedNoCredential, common.ErrorNoCredential,
			"❌ No provider token stored. Add your API token first.")
	}
	res.State = StateCredentialChecked

	// CREDENTIAL_CHECKED -> QUOTA_CHECKED
	used, err := s.ledger.Used(ctx, account)
	if err != nil {
		// Unknown usage is treated as over-quota: reject, never risk
		// silently exceeding the cap.
		return s.fail(ctx, log, res, req.AccountID, StateRejectedQuota, err,
			"❌ Could not determine your current usage. Try again later.")
	}
	if used+req.Size > common.StorageQuotaBytes {
		return s.fail(ctx, log, res, req.AccountID, StateRejectedQuota, common.ErrorQuotaExceeded,
			"❌ Storage quota exceeded (10 GiB). Upload rejected.")
	}
	res.State = StateQuotaChecked

	// QUOTA_CHECKED -> TRANSFERRED, bounded by the transfer timeout.
	// Once issued, the transfer is not cancellable by the user.
	cid, err := s.transfer(ctx, account.Credential, name, req)
	if err != nil {
		return s.fail(ctx, log, res, req.AccountID, StateTransferFailed,
			fmt.Errorf("%w: %v", common.ErrorTransferFailed, err),
			"❌ Upload to the storage provider failed. Please resubmit.")
	}
	res.State = StateTransferred
	res.ContentID = cid

	// TRANSFERRED -> COMMITTED: record, used-bytes delta, and reward are
	// one logical commit; none of them appears without the others.
	record := &models.FileRecord{
		OwnerID:    req.AccountID,
		Name:       name,
		ContentID:  cid,
		Size:       req.Size,
		UploadedAt: time.Now(),
	}
	err = inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Files(tx).Create(ctx, record); err != nil {
			return err
		}
		if err := s.ledger.CommitDelta(ctx, tx, req.AccountID, req.Size); err != nil {
			return err
		}
		return s.points.Award(ctx, tx, req.AccountID, common.UploadReward)
	})
	if err != nil {
		log.Error(ctx, "commit failed after transfer", "error", err, "content_id", cid)
		s.notify(ctx, req.AccountID, "❌ Upload could not be recorded. Please resubmit.")
		return res, fmt.Errorf("error committing upload: %w", err)
	}
	res.State = StateCommitted

	log.Info(ctx, "upload committed", "content_id", cid)
	s.notify(ctx, req.AccountID,
		fmt.Sprintf("✅ Uploaded! CID: %s\n🎉 +%d points!", cid, common.UploadReward))
	return res, nil
}

func (s *UploadService) transfer(ctx context.Context, token, name string, req UploadRequest) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, s.transferTimeout)
	defer cancel()

	src, err := req.Open(tctx)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer src.Close()

	return s.client.Transfer(tctx, token, name, src, req.Size)
}

func (s *UploadService) fail(ctx context.Context, log logging.Logger, res *UploadResult,
	accountID string, state UploadState, cause error, text string) (*UploadResult, error) {

	res.State = state
	log.Warn(ctx, "upload stopped", "state", string(state), "cause", cause.Error())
	s.notify(ctx, accountID, text)
	return res, cause
}

func (s *UploadService) notify(ctx context.Context, accountID string, text string) {
	if err := s.notifier.Notify(ctx, accountID, text); err != nil {
		s.logger.Warn(ctx, "notification failed", "account_id", accountID, "error", err)
	}
}
