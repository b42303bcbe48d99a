package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// WalletRepo defines the wallet persistence operations
type WalletRepo interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Wallet, error)
	// GetForUpdate takes a row lock on the wallet; only valid inside WithinTx.
	GetForUpdate(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)
	// AdjustBalance applies a signed delta and fails if the balance would go negative.
	AdjustBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error
	Deactivate(ctx context.Context, walletID uuid.UUID) error
}

// TransactionRepo defines the transaction ledger persistence operations
type TransactionRepo interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, txID uuid.UUID) (*models.Transaction, error)
	// GetByIDForUpdate takes a row lock on the transaction; only valid inside WithinTx.
	GetByIDForUpdate(ctx context.Context, txID uuid.UUID) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	// GetPendingByWithdrawalCode locks the pending ATM withdrawal matching the
	// holder's phone number and confirmation code; only valid inside WithinTx.
	GetPendingByWithdrawalCode(ctx context.Context, phoneNumber, code string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, txID uuid.UUID, status models.TransactionStatus) error
	ListPendingExpired(ctx context.Context, limit int) ([]uuid.UUID, error)
	List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
}

// TxRepos exposes the repositories bound to an open database transaction
type TxRepos interface {
	Wallets() WalletRepo
	Transactions() TransactionRepo
}

// Store runs a unit of work inside a single database transaction
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// IdempotencyGuard protects mutating operations against duplicate delivery.
// Reserve returns the cached result when the same key already completed,
// nil when the key was freshly reserved, and a duplicate-request error when
// another request holding the key is still in flight.
type IdempotencyGuard interface {
	Reserve(ctx context.Context, scope, key string) ([]byte, error)
	Commit(ctx context.Context, scope, key string, result interface{}) error
	Release(ctx context.Context, scope, key string) error
}

// ListCache caches transaction list pages per user
type ListCache interface {
	Get(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Transaction, bool)
	Set(ctx context.Context, userID uuid.UUID, page, pageSize int, transactions []*models.Transaction)
	Invalidate(ctx context.Context, userID uuid.UUID)
}
