package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/internal/utils"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// Accept credits the held transfer amount to the recipient. Only the
// recipient's owner may accept, and only while the transfer is still
// pending. An accept that races the expiry settles the transfer as
// expired instead.
func (uc *walletUC) Accept(ctx context.Context, txID, actingUserID uuid.UUID) (*models.Transaction, error) {
	var tx *models.Transaction
	expired := false

	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var err error
		tx, err = repos.Transactions().GetByIDForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Type != models.TransactionTypeTransfer {
			return apperrors.New(apperrors.InvalidState, "only transfers can be accepted")
		}
		if tx.Status != models.TransactionStatusPending {
			return apperrors.Newf(apperrors.InvalidState, "transaction is %s, not pending", tx.Status)
		}

		recipient, _, err := lockWalletPair(ctx, repos, *tx.RecipientWalletID, *tx.SenderWalletID)
		if err != nil {
			return err
		}
		if recipient.UserID != actingUserID {
			return apperrors.New(apperrors.Forbidden, "only the recipient can accept a transfer")
		}

		if tx.IsExpired(time.Now()) {
			expired = true
			return settleExpiredLocked(ctx, repos, tx)
		}

		if err := requireActive(recipient); err != nil {
			return err
		}
		if err := repos.Wallets().AdjustBalance(ctx, recipient.ID, tx.Amount); err != nil {
			return err
		}
		tx.Status = models.TransactionStatusCompleted
		return repos.Transactions().UpdateStatus(ctx, tx.ID, tx.Status)
	})
	if err != nil {
		return nil, err
	}

	uc.afterSettlement(ctx, tx)

	if expired {
		logger.InfoCtx(ctx, "Transfer expired on accept",
			logger.String("transaction_id", tx.ID.String()))
		return nil, apperrors.ErrExpired
	}

	logger.InfoCtx(ctx, "Transfer accepted",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("amount", tx.Amount.String()))
	return tx, nil
}

// Reject returns the held transfer amount to the sender. Only the
// recipient's owner may reject a pending transfer.
func (uc *walletUC) Reject(ctx context.Context, txID, actingUserID uuid.UUID) (*models.Transaction, error) {
	var tx *models.Transaction

	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var err error
		tx, err = repos.Transactions().GetByIDForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Type != models.TransactionTypeTransfer {
			return apperrors.New(apperrors.InvalidState, "only transfers can be rejected")
		}
		if tx.Status != models.TransactionStatusPending {
			return apperrors.Newf(apperrors.InvalidState, "transaction is %s, not pending", tx.Status)
		}

		recipient, _, err := lockWalletPair(ctx, repos, *tx.RecipientWalletID, *tx.SenderWalletID)
		if err != nil {
			return err
		}
		if recipient.UserID != actingUserID {
			return apperrors.New(apperrors.Forbidden, "only the recipient can reject a transfer")
		}

		if err := repos.Wallets().AdjustBalance(ctx, *tx.SenderWalletID, tx.Amount); err != nil {
			return err
		}
		tx.Status = models.TransactionStatusRejected
		return repos.Transactions().UpdateStatus(ctx, tx.ID, tx.Status)
	})
	if err != nil {
		return nil, err
	}

	uc.afterSettlement(ctx, tx)

	logger.InfoCtx(ctx, "Transfer rejected",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("amount", tx.Amount.String()))
	return tx, nil
}

const idempotencyScopeCashOut = "webhook:cashout"

// VerifyCashOut completes a pending ATM withdrawal identified by the
// holder's phone number and confirmation code. The funds were already
// debited when the withdrawal was requested, so a valid code only flips
// the status. A replayed delivery with the same idempotency key gets
// the original outcome back, including an expired one.
func (uc *walletUC) VerifyCashOut(ctx context.Context, req *models.CashOutVerifyRequest) (*models.Transaction, error) {
	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}
	if req.WithdrawalCode == "" {
		return nil, apperrors.New(apperrors.ValidationError, "withdrawal code is required")
	}

	reserved := false
	if req.IdempotencyKey != "" {
		cached, err := uc.idem.Reserve(ctx, idempotencyScopeCashOut, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			var tx models.Transaction
			if err := json.Unmarshal(cached, &tx); err != nil {
				return nil, apperrors.New(apperrors.InternalError, "failed to decode cached result")
			}
			if tx.Status == models.TransactionStatusExpired {
				return nil, apperrors.ErrExpired
			}
			return &tx, nil
		}
		reserved = true
	}

	var tx *models.Transaction
	expired := false

	err = uc.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var err error
		tx, err = repos.Transactions().GetPendingByWithdrawalCode(ctx, phone, req.WithdrawalCode)
		if err != nil {
			return err
		}

		if tx.IsExpired(time.Now()) {
			expired = true
			return settleExpiredLocked(ctx, repos, tx)
		}

		tx.Status = models.TransactionStatusCompleted
		return repos.Transactions().UpdateStatus(ctx, tx.ID, tx.Status)
	})
	if err != nil {
		if reserved {
			if relErr := uc.idem.Release(ctx, idempotencyScopeCashOut, req.IdempotencyKey); relErr != nil {
				logger.ErrorCtx(ctx, "Failed to release idempotency key", logger.Err(relErr))
			}
		}
		return nil, err
	}

	uc.afterSettlement(ctx, tx)

	// An expired settle committed a refund, so the key is committed too;
	// a replayed delivery must see the expiry, not retry the lookup.
	if reserved {
		if cmErr := uc.idem.Commit(ctx, idempotencyScopeCashOut, req.IdempotencyKey, tx); cmErr != nil {
			logger.ErrorCtx(ctx, "Failed to commit idempotency key", logger.Err(cmErr))
		}
	}

	if expired {
		logger.InfoCtx(ctx, "Cash-out code expired on verify",
			logger.String("transaction_id", tx.ID.String()))
		return nil, apperrors.ErrExpired
	}

	logger.InfoCtx(ctx, "Cash-out verified",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("amount", tx.Amount.String()))
	return tx, nil
}

// settleExpiredLocked refunds held funds and marks the transaction
// EXPIRED. The caller must already hold the transaction row lock.
func settleExpiredLocked(ctx context.Context, repos wallet.TxRepos, tx *models.Transaction) error {
	if tx.SenderWalletID != nil {
		if _, err := repos.Wallets().GetForUpdate(ctx, *tx.SenderWalletID); err != nil {
			return err
		}
		if err := repos.Wallets().AdjustBalance(ctx, *tx.SenderWalletID, tx.Amount); err != nil {
			return err
		}
	}
	tx.Status = models.TransactionStatusExpired
	return repos.Transactions().UpdateStatus(ctx, tx.ID, tx.Status)
}
