package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType identifies the money movement kind.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
)

// FundingSource identifies where the money enters or leaves the system.
type FundingSource string

const (
	FundingSourcePaysend  FundingSource = "PAYSEND"
	FundingSourceBLFATM   FundingSource = "BLF_ATM"
	FundingSourceInternal FundingSource = "INTERNAL"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusAccepted  TransactionStatus = "ACCEPTED"
	TransactionStatusRejected  TransactionStatus = "REJECTED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusExpired   TransactionStatus = "EXPIRED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is an immutable record of a money movement. Amount never
// changes after creation; only status and updated_at move.
type Transaction struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	Type              TransactionType   `db:"type" json:"type"`
	Amount            decimal.Decimal   `db:"amount" json:"amount"`
	FundingSource     FundingSource     `db:"funding_source" json:"funding_source"`
	SenderWalletID    *uuid.UUID        `db:"sender_wallet_id" json:"sender_wallet_id,omitempty"`
	RecipientWalletID *uuid.UUID        `db:"recipient_wallet_id" json:"recipient_wallet_id,omitempty"`
	Status            TransactionStatus `db:"status" json:"status"`
	Reference         string            `db:"reference" json:"reference"`
	IdempotencyKey    *string           `db:"idempotency_key" json:"idempotency_key,omitempty"`
	ExpiryTime        *time.Time        `db:"expiry_time" json:"expiry_time,omitempty"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updated_at"`
}

// IsExpired reports whether the transaction has an expiry in the past.
func (t *Transaction) IsExpired(now time.Time) bool {
	return t.ExpiryTime != nil && now.After(*t.ExpiryTime)
}

// ProcessRequest carries a transaction request into the processing
// pipeline. UserID is the authenticated caller; RecipientPhoneNumber is
// set for transfers and for webhook-originated deposits.
type ProcessRequest struct {
	UserID               uuid.UUID       `json:"-"`
	Type                 TransactionType `json:"type"`
	Amount               decimal.Decimal `json:"amount"`
	FundingSource        FundingSource   `json:"funding_source"`
	Currency             string          `json:"currency,omitempty"`
	RecipientPhoneNumber string          `json:"recipient_phone_number,omitempty"`
	Reference            string          `json:"-"`
	IdempotencyKey       string          `json:"-"`
}

// ProcessResult is the outcome of processing a transaction request.
// WithdrawalCode is populated only for confirmation-required
// withdrawals and is never persisted in clear on the transaction row.
type ProcessResult struct {
	Transaction    *Transaction `json:"transaction"`
	WithdrawalCode string       `json:"withdrawal_code,omitempty"`
}

// Transaction list ordering fields.
const (
	OrderByAmount     = "amount"
	OrderByCreatedAt  = "created_at"
	OrderByExpiryTime = "expiry_time"
	OrderByStatus     = "status"
)

// TransactionFilter selects and orders transactions involving a wallet.
type TransactionFilter struct {
	WalletID      uuid.UUID
	AmountMin     *decimal.Decimal
	AmountMax     *decimal.Decimal
	Type          TransactionType
	FundingSource FundingSource
	Status        TransactionStatus
	Reference     string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	ExpiresAfter  *time.Time
	ExpiresBefore *time.Time
	Counterparty  *uuid.UUID
	OrderBy       string
	Descending    bool
	Page          int
	PageSize      int
}
