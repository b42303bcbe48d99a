package gateway

import (
	"context"

	"github.com/purplewallet/wallet-service/internal/pkg/models"
	natspkg "github.com/purplewallet/wallet-service/internal/pkg/nats"
	"github.com/purplewallet/wallet-service/internal/pkg/retry"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// SubjectWalletNotifications carries user-facing wallet activity events
const SubjectWalletNotifications = "wallet.notifications"

// WalletGW handles NATS publishing for wallet events
type WalletGW struct {
	natsClient *natspkg.Client
	retrier    *retry.Retrier
}

// NewWalletGW creates a new wallet gateway
func NewWalletGW(client *natspkg.Client) wallet.WalletGW {
	return &WalletGW{
		natsClient: client,
		retrier:    retry.NewWithDefaults(),
	}
}

// PublishNotification publishes a wallet activity event to NATS. Publish
// failures are retried with backoff; notifications are best effort and
// the caller treats a final failure as non-fatal.
func (g *WalletGW) PublishNotification(ctx context.Context, event *models.NotificationEvent) error {
	return g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.natsClient.PublishJSON(SubjectWalletNotifications, event)
	})
}
