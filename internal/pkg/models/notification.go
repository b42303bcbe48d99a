package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification actions published to the notification subject.
const (
	NotificationActionSent             = "sent"
	NotificationActionReceived         = "received"
	NotificationActionDeposit          = "deposit"
	NotificationActionWithdrawal       = "withdrawal"
	NotificationActionCashOutRequested = "cash_out_requested"
	NotificationActionCashOutVerified  = "cash_out_verified"
	NotificationActionTransferAccepted = "transfer_accepted"
	NotificationActionTransferRejected = "transfer_rejected"
	NotificationActionTransferExpired  = "transfer_expired"
)

// NotificationEvent is published after a transaction changes state.
// Delivery is fire-and-forget, at-least-once.
type NotificationEvent struct {
	UserID       uuid.UUID         `json:"user_id"`
	Action       string            `json:"action"`
	Amount       string            `json:"amount"`
	Currency     string            `json:"currency"`
	Counterparty string            `json:"counterparty,omitempty"`
	Reference    string            `json:"reference"`
	Status       TransactionStatus `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
}
