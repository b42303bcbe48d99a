package wallet

import (
	"context"

	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

// WalletGW handles event publishing for wallet activity
type WalletGW interface {
	PublishNotification(ctx context.Context, event *models.NotificationEvent) error
}
