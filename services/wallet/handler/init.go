package handler

import (
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/services/wallet"
	httpHandler "github.com/purplewallet/wallet-service/services/wallet/handler/http"
)

// Handler combines all handlers for the wallet service
type Handler struct {
	walletHTTP      *httpHandler.WalletHandler
	transactionHTTP *httpHandler.TransactionHandler
	webhookHTTP     *httpHandler.WebhookHandler
	cfg             *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(walletUC wallet.WalletUC, cfg *models.Config) *Handler {
	return &Handler{
		walletHTTP:      httpHandler.NewWalletHandler(walletUC),
		transactionHTTP: httpHandler.NewTransactionHandler(walletUC),
		webhookHTTP:     httpHandler.NewWebhookHandler(walletUC, cfg),
		cfg:             cfg,
	}
}
