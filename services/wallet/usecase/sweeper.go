package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// Sweeper settles pending transactions whose expiry has passed: held
// transfer and withdrawal funds go back to the sender and the row is
// marked EXPIRED. Each transaction is settled in its own unit of work
// under the same row lock accept and reject take, so a sweep can never
// double-settle against a racing user action.
type Sweeper struct {
	cfg    *models.Config
	store  wallet.Store
	txRepo wallet.TransactionRepo
	uc     *walletUC
}

// NewSweeper creates a sweeper over the same store and repositories the
// usecase runs on. The usecase must have been built by NewWalletUC.
func NewSweeper(cfg *models.Config, store wallet.Store, txRepo wallet.TransactionRepo, uc wallet.WalletUC) *Sweeper {
	concrete, _ := uc.(*walletUC)
	return &Sweeper{cfg: cfg, store: store, txRepo: txRepo, uc: concrete}
}

// Start runs sweep passes on the configured interval until ctx is
// cancelled
func (s *Sweeper) Start(ctx context.Context) {
	intervalSeconds := s.cfg.Wallet.SweepIntervalSeconds
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}
	ticker := time.NewTicker(time.Duration(intervalSeconds) * time.Second)
	defer ticker.Stop()

	logger.Info("Expiry sweeper started",
		logger.Int("interval_seconds", intervalSeconds))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				logger.Error("Sweep pass failed", logger.Err(err))
			}
		}
	}
}

// SweepOnce settles one batch of expired pending transactions
func (s *Sweeper) SweepOnce(ctx context.Context) error {
	batchSize := s.cfg.Wallet.SweepBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	ids, err := s.txRepo.ListPendingExpired(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	settled := 0
	for _, id := range ids {
		if err := s.settleOne(ctx, id); err != nil {
			logger.Error("Failed to settle expired transaction",
				logger.String("transaction_id", id.String()),
				logger.Err(err))
			continue
		}
		settled++
	}

	logger.Info("Sweep pass completed",
		logger.Int("candidates", len(ids)),
		logger.Int("settled", settled))
	return nil
}

func (s *Sweeper) settleOne(ctx context.Context, txID uuid.UUID) error {
	var tx *models.Transaction
	skipped := false

	err := s.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var err error
		tx, err = repos.Transactions().GetByIDForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		// A user action may have settled the row between the listing
		// and this lock.
		if tx.Status != models.TransactionStatusPending || !tx.IsExpired(time.Now()) {
			skipped = true
			return nil
		}
		return settleExpiredLocked(ctx, repos, tx)
	})
	if err != nil {
		// The row vanished or was settled and archived; nothing to do.
		if apperrors.Is(err, apperrors.NotFound) {
			return nil
		}
		return err
	}
	if skipped {
		return nil
	}

	if s.uc != nil {
		s.uc.afterSettlement(ctx, tx)
	}
	return nil
}
