package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/internal/utils"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// transactionStrategy executes one transaction type inside an open
// database transaction. Strategies lock every wallet they touch before
// mutating balances; wallets are always locked in ascending ID order so
// concurrent transfers between the same pair cannot deadlock.
type transactionStrategy interface {
	execute(ctx context.Context, repos wallet.TxRepos, req *models.ProcessRequest) (*models.ProcessResult, error)
}

const withdrawalCodeLength = 8

func generateReference(prefix string) (string, error) {
	code, err := utils.GenerateRandomHex(withdrawalCodeLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}
	return prefix + "-" + strings.ToUpper(code), nil
}

func idempotencyKeyPtr(req *models.ProcessRequest) *string {
	if req.IdempotencyKey == "" {
		return nil
	}
	key := req.IdempotencyKey
	return &key
}

// requireActive rejects operations on deactivated wallets
func requireActive(w *models.Wallet) error {
	if !w.IsActive {
		return apperrors.New(apperrors.InvalidState, "wallet is not active")
	}
	return nil
}

// requireCurrency rejects requests whose currency does not match the wallet
func requireCurrency(w *models.Wallet, currency string) error {
	if currency != "" && currency != w.Currency {
		return apperrors.Newf(apperrors.ValidationError, "currency %s does not match wallet currency %s", currency, w.Currency)
	}
	return nil
}

// lockWalletPair locks two wallets in ascending ID order and returns them
// in the order they were passed
func lockWalletPair(ctx context.Context, repos wallet.TxRepos, firstID, secondID uuid.UUID) (*models.Wallet, *models.Wallet, error) {
	lockOrder := []uuid.UUID{firstID, secondID}
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		lockOrder = []uuid.UUID{secondID, firstID}
	}

	locked := make(map[uuid.UUID]*models.Wallet, 2)
	for _, id := range lockOrder {
		w, err := repos.Wallets().GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		locked[id] = w
	}
	return locked[firstID], locked[secondID], nil
}

// depositStrategy credits a wallet and settles immediately
type depositStrategy struct {
	cfg *models.Config
}

func (s *depositStrategy) execute(ctx context.Context, repos wallet.TxRepos, req *models.ProcessRequest) (*models.ProcessResult, error) {
	var target *models.Wallet
	var err error
	if req.RecipientPhoneNumber != "" {
		phone, normErr := utils.NormalizePhoneNumber(req.RecipientPhoneNumber)
		if normErr != nil {
			return nil, apperrors.New(apperrors.ValidationError, normErr.Error())
		}
		target, err = repos.Wallets().GetByPhoneNumber(ctx, phone)
	} else {
		target, err = repos.Wallets().GetByUserID(ctx, req.UserID)
	}
	if err != nil {
		return nil, err
	}

	if err := requireActive(target); err != nil {
		return nil, err
	}
	if err := requireCurrency(target, req.Currency); err != nil {
		return nil, err
	}

	if _, err := repos.Wallets().GetForUpdate(ctx, target.ID); err != nil {
		return nil, err
	}
	if err := repos.Wallets().AdjustBalance(ctx, target.ID, req.Amount); err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference == "" {
		if reference, err = generateReference("DEPOSIT"); err != nil {
			return nil, err
		}
	}

	fundingSource := req.FundingSource
	if fundingSource == "" {
		fundingSource = models.FundingSourceInternal
	}

	tx := &models.Transaction{
		ID:                uuid.New(),
		Type:              models.TransactionTypeDeposit,
		Amount:            req.Amount,
		FundingSource:     fundingSource,
		RecipientWalletID: &target.ID,
		Status:            models.TransactionStatusCompleted,
		Reference:         reference,
		IdempotencyKey:    idempotencyKeyPtr(req),
	}
	if err := repos.Transactions().Create(ctx, tx); err != nil {
		return nil, err
	}

	return &models.ProcessResult{Transaction: tx}, nil
}

// withdrawalStrategy debits the caller's wallet. When confirmation is
// required the funds are held and the withdrawal stays pending until an
// ATM verifies the confirmation code or the hold expires.
type withdrawalStrategy struct {
	cfg *models.Config
}

func (s *withdrawalStrategy) execute(ctx context.Context, repos wallet.TxRepos, req *models.ProcessRequest) (*models.ProcessResult, error) {
	source, err := repos.Wallets().GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(source); err != nil {
		return nil, err
	}
	if err := requireCurrency(source, req.Currency); err != nil {
		return nil, err
	}

	if _, err := repos.Wallets().GetForUpdate(ctx, source.ID); err != nil {
		return nil, err
	}
	if err := repos.Wallets().AdjustBalance(ctx, source.ID, req.Amount.Neg()); err != nil {
		return nil, err
	}

	needsConfirmation := s.cfg.Wallet.WithdrawalRequireConfirmation || req.FundingSource == models.FundingSourceBLFATM

	fundingSource := req.FundingSource
	if fundingSource == "" {
		fundingSource = models.FundingSourceInternal
	}

	tx := &models.Transaction{
		ID:             uuid.New(),
		Type:           models.TransactionTypeWithdrawal,
		Amount:         req.Amount,
		FundingSource:  fundingSource,
		SenderWalletID: &source.ID,
		IdempotencyKey: idempotencyKeyPtr(req),
	}

	result := &models.ProcessResult{Transaction: tx}

	if needsConfirmation {
		code, err := utils.GenerateRandomHex(withdrawalCodeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate withdrawal code: %w", err)
		}
		code = strings.ToUpper(code)

		expiryMinutes := s.cfg.Wallet.CashOutExpiryMinutes
		if expiryMinutes <= 0 {
			expiryMinutes = 30
		}
		expiry := time.Now().Add(time.Duration(expiryMinutes) * time.Minute)

		tx.Status = models.TransactionStatusPending
		tx.Reference = "BLF-ATM-" + code
		tx.ExpiryTime = &expiry
		tx.FundingSource = models.FundingSourceBLFATM
		result.WithdrawalCode = code
	} else {
		tx.Status = models.TransactionStatusCompleted
		if tx.Reference, err = generateReference("WITHDRAWAL"); err != nil {
			return nil, err
		}
	}

	if err := repos.Transactions().Create(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// transferStrategy moves funds between two wallets. The sender is debited
// immediately and the amount is held until the recipient accepts, rejects,
// or the transfer expires.
type transferStrategy struct {
	cfg *models.Config
}

func (s *transferStrategy) execute(ctx context.Context, repos wallet.TxRepos, req *models.ProcessRequest) (*models.ProcessResult, error) {
	if req.RecipientPhoneNumber == "" {
		return nil, apperrors.New(apperrors.ValidationError, "recipient phone number is required")
	}
	phone, err := utils.NormalizePhoneNumber(req.RecipientPhoneNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.ValidationError, err.Error())
	}

	sender, err := repos.Wallets().GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	recipient, err := repos.Wallets().GetByPhoneNumber(ctx, phone)
	if err != nil {
		return nil, err
	}

	if sender.ID == recipient.ID {
		return nil, apperrors.New(apperrors.ValidationError, "cannot transfer to own wallet")
	}
	if err := requireActive(sender); err != nil {
		return nil, err
	}
	if err := requireActive(recipient); err != nil {
		return nil, err
	}
	if sender.Currency != recipient.Currency {
		return nil, apperrors.New(apperrors.ValidationError, "sender and recipient wallets hold different currencies")
	}
	if err := requireCurrency(sender, req.Currency); err != nil {
		return nil, err
	}

	if _, _, err := lockWalletPair(ctx, repos, sender.ID, recipient.ID); err != nil {
		return nil, err
	}
	if err := repos.Wallets().AdjustBalance(ctx, sender.ID, req.Amount.Neg()); err != nil {
		return nil, err
	}

	reference, err := generateReference("TRANSFER")
	if err != nil {
		return nil, err
	}

	expiryHours := s.cfg.Wallet.TransferExpiryHours
	if expiryHours <= 0 {
		expiryHours = 24
	}
	expiry := time.Now().Add(time.Duration(expiryHours) * time.Hour)

	tx := &models.Transaction{
		ID:                uuid.New(),
		Type:              models.TransactionTypeTransfer,
		Amount:            req.Amount,
		FundingSource:     models.FundingSourceInternal,
		SenderWalletID:    &sender.ID,
		RecipientWalletID: &recipient.ID,
		Status:            models.TransactionStatusPending,
		Reference:         reference,
		IdempotencyKey:    idempotencyKeyPtr(req),
		ExpiryTime:        &expiry,
	}
	if err := repos.Transactions().Create(ctx, tx); err != nil {
		return nil, err
	}

	return &models.ProcessResult{Transaction: tx}, nil
}
