package usecase

import (
	"context"
	"encoding/json"

	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/services/wallet"
	"github.com/shopspring/decimal"
)

const (
	idempotencyScopePaysend = "webhook:paysend"

	paysendStatusCompleted = "COMPLETED"

	webhookResultProcessed = "processed"
	webhookResultIgnored   = "ignored"
)

// ProcessPaysendWebhook translates a verified Paysend notification into a
// deposit. The handler has already checked the source IP and signature;
// this applies the idempotency guard and moves the money. A replayed
// delivery gets the original acknowledgement back.
func (uc *walletUC) ProcessPaysendWebhook(ctx context.Context, payload *models.PaysendWebhookPayload, idempotencyKey string) (*models.WebhookAck, error) {
	if idempotencyKey == "" {
		return nil, apperrors.New(apperrors.ValidationError, "idempotency key is required")
	}
	if payload.TransactionID == "" {
		return nil, apperrors.New(apperrors.ValidationError, "transactionId is required")
	}

	cached, err := uc.idem.Reserve(ctx, idempotencyScopePaysend, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		var ack models.WebhookAck
		if err := json.Unmarshal(cached, &ack); err != nil {
			return nil, apperrors.New(apperrors.InternalError, "failed to decode cached acknowledgement")
		}
		logger.InfoCtx(ctx, "Replaying webhook acknowledgement",
			logger.String("provider_transaction_id", payload.TransactionID))
		return &ack, nil
	}

	ack, err := uc.settlePaysendPayload(ctx, payload)
	if err != nil {
		if relErr := uc.idem.Release(ctx, idempotencyScopePaysend, idempotencyKey); relErr != nil {
			logger.ErrorCtx(ctx, "Failed to release webhook idempotency key", logger.Err(relErr))
		}
		return nil, err
	}

	if cmErr := uc.idem.Commit(ctx, idempotencyScopePaysend, idempotencyKey, ack); cmErr != nil {
		logger.ErrorCtx(ctx, "Failed to commit webhook idempotency key", logger.Err(cmErr))
	}
	return ack, nil
}

func (uc *walletUC) settlePaysendPayload(ctx context.Context, payload *models.PaysendWebhookPayload) (*models.WebhookAck, error) {
	if payload.Status != paysendStatusCompleted {
		logger.InfoCtx(ctx, "Ignoring non-completed provider notification",
			logger.String("provider_transaction_id", payload.TransactionID),
			logger.String("provider_status", payload.Status))
		return &models.WebhookAck{TransactionID: payload.TransactionID, Result: webhookResultIgnored}, nil
	}

	amount, err := decimal.NewFromString(payload.Recipient.Amount)
	if err != nil {
		return nil, apperrors.New(apperrors.ValidationError, "invalid amount in provider payload")
	}

	req := &models.ProcessRequest{
		Type:                 models.TransactionTypeDeposit,
		Amount:               amount,
		FundingSource:        models.FundingSourcePaysend,
		Currency:             payload.Recipient.Currency,
		RecipientPhoneNumber: payload.Recipient.PhoneNumber,
		Reference:            "Paysend: " + payload.TransactionID,
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.New(apperrors.ValidationError, "amount must be positive")
	}

	strategy := &depositStrategy{cfg: uc.cfg}
	var result *models.ProcessResult
	err = uc.store.WithinTx(ctx, func(ctx context.Context, repos wallet.TxRepos) error {
		var execErr error
		result, execErr = strategy.execute(ctx, repos, req)
		return execErr
	})
	if err != nil {
		return nil, err
	}

	uc.afterSettlement(ctx, result.Transaction)

	logger.InfoCtx(ctx, "Paysend deposit settled",
		logger.String("provider_transaction_id", payload.TransactionID),
		logger.String("transaction_id", result.Transaction.ID.String()),
		logger.String("amount", amount.String()))
	return &models.WebhookAck{TransactionID: payload.TransactionID, Result: webhookResultProcessed}, nil
}
