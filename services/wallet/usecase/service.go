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

const idempotencyScopeTransaction = "transaction"

// walletUC implements the wallet service use cases
type walletUC struct {
	cfg        *models.Config
	store      wallet.Store
	walletRepo wallet.WalletRepo
	txRepo     wallet.TransactionRepo
	idem       wallet.IdempotencyGuard
	cache      wallet.ListCache
	gw         wallet.WalletGW
}

// NewWalletUC creates a new wallet usecase
func NewWalletUC(
	cfg *models.Config,
	store wallet.Store,
	walletRepo wallet.WalletRepo,
	txRepo wallet.TransactionRepo,
	idem wallet.IdempotencyGuard,
	cache wallet.ListCache,
	gw wallet.WalletGW,
) (wallet.WalletUC, error) {
	return &walletUC{
		cfg:        cfg,
		store:      store,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		idem:       idem,
		cache:      cache,
		gw:         gw,
	}, nil
}

// CreateWallet opens a wallet for the user with a zero balance
func (uc *walletUC) CreateWallet(ctx context.Context, userID uuid.UUID, req *models.CreateWalletRequest) (*models.Wallet, error) {
	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	currency := req.Currency
	if currency == "" {
		currency = uc.cfg.Wallet.DefaultCurrency
	}
	if !models.IsSupportedCurrency(currency) {
		return nil, apperrors.Newf(apperrors.ValidationError, "unsupported currency: %s", currency)
	}

	if _, err := uc.walletRepo.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.New(apperrors.InvalidState, "user already has a wallet")
	} else if !apperrors.Is(err, apperrors.NotFound) {
		return nil, err
	}
	if _, err := uc.walletRepo.GetByPhoneNumber(ctx, phone); err == nil {
		return nil, apperrors.New(apperrors.InvalidState, "phone number is already registered")
	} else if !apperrors.Is(err, apperrors.NotFound) {
		return nil, err
	}

	w := &models.Wallet{
		ID:          uuid.New(),
		UserID:      userID,
		PhoneNumber: phone,
		Currency:    currency,
		IsActive:    true,
	}
	if err := uc.walletRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Wallet created",
		logger.String("wallet_id", w.ID.String()),
		logger.String("user_id", userID.String()),
		logger.String("currency", currency))
	return w, nil
}

// GetWallet returns the caller's wallet
func (uc *walletUC) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return uc.walletRepo.GetByUserID(ctx, userID)
}

func (uc *walletUC) strategyFor(txType models.TransactionType) transactionStrategy {
	switch txType {
	case models.TransactionTypeDeposit:
		return &depositStrategy{cfg: uc.cfg}
	case models.TransactionTypeWithdrawal:
		return &withdrawalStrategy{cfg: uc.cfg}
	case models.TransactionTypeTransfer:
		return &transferStrategy{cfg: uc.cfg}
	}
	return nil
}

// Process validates and executes a transaction request. When the request
// carries an idempotency key, a retry of an already-settled request replays
// the original result without touching any balance.
func (uc *walletUC) Process(ctx context.Context, req *models.ProcessRequest) (*models.ProcessResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.New(apperrors.ValidationError, "amount must be positive")
	}
	strategy := uc.strategyFor(req.Type)
	if strategy == nil {
		return nil, apperrors.Newf(apperrors.ValidationError, "unknown transaction type: %s", req.Type)
	}

	reserved := false
	if req.IdempotencyKey != "" {
		cached, err := uc.idem.Reserve(ctx, idempotencyScopeTransaction, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			var result models.ProcessResult
			if err := json.Unmarshal(cached, &result); err != nil {
				return nil, apperrors.New(apperrors.InternalError, "failed to decode cached result")
			}
			logger.InfoCtx(ctx, "Replaying idempotent transaction result",
				logger.String("idempotency_key", req.IdempotencyKey))
			return &result, nil
		}
		reserved = true
	}

	var result *models.ProcessResult
	err := uc.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var execErr error
		result, execErr = strategy.execute(ctx, repos, req)
		return execErr
	})
	if err != nil {
		if reserved {
			if relErr := uc.idem.Release(ctx, idempotencyScopeTransaction, req.IdempotencyKey); relErr != nil {
				logger.ErrorCtx(ctx, "Failed to release idempotency key", logger.Err(relErr))
			}
		}
		return nil, err
	}

	if reserved {
		if cmErr := uc.idem.Commit(ctx, idempotencyScopeTransaction, req.IdempotencyKey, result); cmErr != nil {
			logger.ErrorCtx(ctx, "Failed to commit idempotency key", logger.Err(cmErr))
		}
	}

	uc.afterSettlement(ctx, result.Transaction)

	logger.InfoCtx(ctx, "Transaction processed",
		logger.String("transaction_id", result.Transaction.ID.String()),
		logger.String("type", string(result.Transaction.Type)),
		logger.String("status", string(result.Transaction.Status)),
		logger.String("reference", result.Transaction.Reference))
	return result, nil
}

// ListTransactions returns a page of the user's transaction history.
// Unfiltered pages are served from the cache when possible.
func (uc *walletUC) ListTransactions(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	w, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.WalletID = w.ID

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	cacheable := isPlainListing(filter)
	if cacheable {
		if cached, ok := uc.cache.Get(ctx, userID, filter.Page, filter.PageSize); ok {
			return cached, nil
		}
	}

	transactions, err := uc.txRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.cache.Set(ctx, userID, filter.Page, filter.PageSize, transactions)
	}
	return transactions, nil
}

// isPlainListing reports whether the filter is the default newest-first
// page with no extra criteria, which is the only shape worth caching.
// Ascending requests bypass the cache so they never get a cached
// newest-first page.
func isPlainListing(f *models.TransactionFilter) bool {
	return f.Descending &&
		f.AmountMin == nil && f.AmountMax == nil &&
		f.Type == "" && f.FundingSource == "" && f.Status == "" &&
		f.Reference == "" &&
		f.CreatedAfter == nil && f.CreatedBefore == nil &&
		f.ExpiresAfter == nil && f.ExpiresBefore == nil &&
		f.Counterparty == nil && f.OrderBy == ""
}

// afterSettlement invalidates cached listings and publishes notifications
// for every wallet the transaction touched. Both are best effort; the
// transaction has already committed.
func (uc *walletUC) afterSettlement(ctx context.Context, tx *models.Transaction) {
	sender := uc.walletForNotify(ctx, tx.SenderWalletID)
	recipient := uc.walletForNotify(ctx, tx.RecipientWalletID)

	if sender != nil {
		uc.cache.Invalidate(ctx, sender.UserID)
	}
	if recipient != nil {
		uc.cache.Invalidate(ctx, recipient.UserID)
	}

	for _, event := range buildNotifications(tx, sender, recipient) {
		if err := uc.gw.PublishNotification(ctx, event); err != nil {
			logger.ErrorCtx(ctx, "Failed to publish wallet notification",
				logger.String("transaction_id", tx.ID.String()),
				logger.String("action", event.Action),
				logger.Err(err))
		}
	}
}

func (uc *walletUC) walletForNotify(ctx context.Context, walletID *uuid.UUID) *models.Wallet {
	if walletID == nil {
		return nil
	}
	w, err := uc.walletRepo.GetByID(ctx, *walletID)
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to load wallet for notification",
			logger.String("wallet_id", walletID.String()),
			logger.Err(err))
		return nil
	}
	return w
}

// buildNotifications maps a settled transaction to the events each
// involved wallet owner should receive. Counterparty phone numbers are
// masked before they leave the service.
func buildNotifications(tx *models.Transaction, sender, recipient *models.Wallet) []*models.NotificationEvent {
	now := time.Now()
	base := func(w *models.Wallet, action, counterparty string) *models.NotificationEvent {
		return &models.NotificationEvent{
			UserID:       w.UserID,
			Action:       action,
			Amount:       tx.Amount.String(),
			Currency:     w.Currency,
			Counterparty: counterparty,
			Reference:    tx.Reference,
			Status:       tx.Status,
			Timestamp:    now,
		}
	}

	var events []*models.NotificationEvent
	switch tx.Type {
	case models.TransactionTypeDeposit:
		if recipient != nil {
			events = append(events, base(recipient, models.NotificationActionDeposit, ""))
		}
	case models.TransactionTypeWithdrawal:
		if sender != nil {
			action := models.NotificationActionWithdrawal
			switch tx.Status {
			case models.TransactionStatusPending:
				action = models.NotificationActionCashOutRequested
			case models.TransactionStatusCompleted:
				if tx.FundingSource == models.FundingSourceBLFATM {
					action = models.NotificationActionCashOutVerified
				}
			}
			events = append(events, base(sender, action, ""))
		}
	case models.TransactionTypeTransfer:
		senderAction, recipientAction := transferActions(tx.Status)
		if sender != nil && recipient != nil {
			events = append(events,
				base(sender, senderAction, utils.MaskPhoneNumber(recipient.PhoneNumber)),
				base(recipient, recipientAction, utils.MaskPhoneNumber(sender.PhoneNumber)))
		}
	}
	return events
}

func transferActions(status models.TransactionStatus) (senderAction, recipientAction string) {
	switch status {
	case models.TransactionStatusPending:
		return models.NotificationActionSent, models.NotificationActionReceived
	case models.TransactionStatusAccepted, models.TransactionStatusCompleted:
		return models.NotificationActionTransferAccepted, models.NotificationActionTransferAccepted
	case models.TransactionStatusRejected:
		return models.NotificationActionTransferRejected, models.NotificationActionTransferRejected
	case models.TransactionStatusExpired:
		return models.NotificationActionTransferExpired, models.NotificationActionTransferExpired
	}
	return models.NotificationActionSent, models.NotificationActionReceived
}
