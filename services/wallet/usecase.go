package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

// WalletUC defines the wallet service use case operations
type WalletUC interface {
	// Wallet lifecycle
	CreateWallet(ctx context.Context, userID uuid.UUID, req *models.CreateWalletRequest) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)

	// Transaction processing
	Process(ctx context.Context, req *models.ProcessRequest) (*models.ProcessResult, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]*models.Transaction, error)

	// Pending transaction actions
	Accept(ctx context.Context, txID, actingUserID uuid.UUID) (*models.Transaction, error)
	Reject(ctx context.Context, txID, actingUserID uuid.UUID) (*models.Transaction, error)
	VerifyCashOut(ctx context.Context, req *models.CashOutVerifyRequest) (*models.Transaction, error)

	// External gateway ingestion
	ProcessPaysendWebhook(ctx context.Context, payload *models.PaysendWebhookPayload, idempotencyKey string) (*models.WebhookAck, error)
}
