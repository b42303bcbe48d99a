package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supported wallet currencies.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyLBP = "LBP"
)

// IsSupportedCurrency reports whether code is one of the wallet currencies.
func IsSupportedCurrency(code string) bool {
	switch code {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyLBP:
		return true
	}
	return false
}

// Wallet represents a user's money account. Balance is mutated only
// inside a database transaction holding the row lock.
type Wallet struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	PhoneNumber string          `db:"phone_number" json:"phone_number"`
	Balance     decimal.Decimal `db:"balance" json:"balance"`
	Currency    string          `db:"currency" json:"currency"`
	IsActive    bool            `db:"is_active" json:"is_active"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// CreateWalletRequest is the payload for opening a wallet.
type CreateWalletRequest struct {
	PhoneNumber string `json:"phone_number"`
	Currency    string `json:"currency"`
}
