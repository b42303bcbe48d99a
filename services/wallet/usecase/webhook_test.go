package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paysendPayload(status string) *models.PaysendWebhookPayload {
	return &models.PaysendWebhookPayload{
		TransactionID: "px-12345",
		Status:        status,
		Recipient: models.PaysendRecipient{
			PhoneNumber: "+96170123456",
			Amount:      "75.50",
			Currency:    models.CurrencyUSD,
		},
	}
}

func TestProcessPaysendWebhook_CreditsRecipient(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	recipient := activeWallet(uuid.New(), 0)

	f.idem.EXPECT().Reserve(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil, nil)
	f.wallets.EXPECT().GetByPhoneNumber(gomock.Any(), "+96170123456").Return(recipient, nil)
	f.wallets.EXPECT().GetForUpdate(gomock.Any(), recipient.ID).Return(recipient, nil)
	f.wallets.EXPECT().AdjustBalance(gomock.Any(), recipient.ID, gomock.Any()).Return(nil)
	f.txs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			assert.Equal(t, models.TransactionTypeDeposit, tx.Type)
			assert.Equal(t, models.FundingSourcePaysend, tx.FundingSource)
			assert.Equal(t, "Paysend: px-12345", tx.Reference)
			assert.Equal(t, "75.5", tx.Amount.String())
			return nil
		})
	f.idem.EXPECT().Commit(gomock.Any(), "webhook:paysend", "delivery-1", gomock.Any()).Return(nil)
	f.expectSettlementHooks(recipient)

	ack, err := f.uc.ProcessPaysendWebhook(context.Background(), paysendPayload("COMPLETED"), "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, "processed", ack.Result)
	assert.Equal(t, "px-12345", ack.TransactionID)
}

func TestProcessPaysendWebhook_IgnoresNonCompletedStatus(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	f.idem.EXPECT().Reserve(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil, nil)
	f.idem.EXPECT().Commit(gomock.Any(), "webhook:paysend", "delivery-1", gomock.Any()).Return(nil)

	ack, err := f.uc.ProcessPaysendWebhook(context.Background(), paysendPayload("FAILED"), "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, "ignored", ack.Result)
}

func TestProcessPaysendWebhook_RequiresIdempotencyKey(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	_, err := f.uc.ProcessPaysendWebhook(context.Background(), paysendPayload("COMPLETED"), "")
	assert.True(t, apperrors.Is(err, apperrors.ValidationError))
}

func TestProcessPaysendWebhook_RequiresTransactionID(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	payload := paysendPayload("COMPLETED")
	payload.TransactionID = ""

	_, err := f.uc.ProcessPaysendWebhook(context.Background(), payload, "delivery-1")
	assert.True(t, apperrors.Is(err, apperrors.ValidationError))
}

func TestProcessPaysendWebhook_ReplaysAcknowledgement(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	original := &models.WebhookAck{TransactionID: "px-12345", Result: "processed"}
	cached, err := json.Marshal(original)
	require.NoError(t, err)

	f.idem.EXPECT().Reserve(gomock.Any(), "webhook:paysend", "delivery-1").Return(cached, nil)

	ack, err := f.uc.ProcessPaysendWebhook(context.Background(), paysendPayload("COMPLETED"), "delivery-1")
	require.NoError(t, err)
	assert.Equal(t, original, ack)
}

func TestProcessPaysendWebhook_ReleasesKeyOnBadAmount(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	payload := paysendPayload("COMPLETED")
	payload.Recipient.Amount = "not-a-number"

	f.idem.EXPECT().Reserve(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil, nil)
	f.idem.EXPECT().Release(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil)

	_, err := f.uc.ProcessPaysendWebhook(context.Background(), payload, "delivery-1")
	assert.True(t, apperrors.Is(err, apperrors.ValidationError))
}

func TestProcessPaysendWebhook_ReleasesKeyWhenRecipientUnknown(t *testing.T) {
	f := newUCFixture(t, defaultConfig())
	defer f.ctrl.Finish()

	f.idem.EXPECT().Reserve(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil, nil)
	f.wallets.EXPECT().GetByPhoneNumber(gomock.Any(), "+96170123456").Return(nil, apperrors.ErrWalletNotFound)
	f.idem.EXPECT().Release(gomock.Any(), "webhook:paysend", "delivery-1").Return(nil)

	_, err := f.uc.ProcessPaysendWebhook(context.Background(), paysendPayload("COMPLETED"), "delivery-1")
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}
