package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/shopspring/decimal"
)

// WalletRepo implements wallet persistence over PostgreSQL. It runs over
// either the connection pool or an open transaction, so the same queries
// serve both plain reads and locked unit-of-work access.
type WalletRepo struct {
	cfg *models.Config
	db  sqlx.ExtContext
}

// NewWalletRepo creates a wallet repository bound to the connection pool
func NewWalletRepo(cfg *models.Config, db *sqlx.DB) *WalletRepo {
	return &WalletRepo{cfg: cfg, db: db}
}

func newTxWalletRepo(cfg *models.Config, tx *sqlx.Tx) *WalletRepo {
	return &WalletRepo{cfg: cfg, db: tx}
}

const walletColumns = `id, user_id, phone_number, balance, currency, is_active, created_at, updated_at`

// Create inserts a new wallet row
func (r *WalletRepo) Create(ctx context.Context, w *models.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, phone_number, balance, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.UserID, w.PhoneNumber, w.Balance, w.Currency, w.IsActive, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetByID retrieves a wallet by its ID
func (r *WalletRepo) GetByID(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	var w models.Wallet
	err := sqlx.GetContext(ctx, r.db, &w, query, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &w, nil
}

// GetByUserID retrieves the wallet owned by the given user
func (r *WalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`

	var w models.Wallet
	err := sqlx.GetContext(ctx, r.db, &w, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by user ID: %w", err)
	}
	return &w, nil
}

// GetByPhoneNumber retrieves the wallet registered under the given phone number
func (r *WalletRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE phone_number = $1`

	var w models.Wallet
	err := sqlx.GetContext(ctx, r.db, &w, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by phone number: %w", err)
	}
	return &w, nil
}

// GetForUpdate locks the wallet row for the remainder of the enclosing
// database transaction
func (r *WalletRepo) GetForUpdate(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	var w models.Wallet
	err := sqlx.GetContext(ctx, r.db, &w, query, walletID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, mapLockError(err, "failed to lock wallet")
	}
	return &w, nil
}

// AdjustBalance applies a signed delta to the wallet balance. The guard in
// the WHERE clause keeps the balance from ever going negative even if the
// caller skipped a funds check.
func (r *WalletRepo) AdjustBalance(ctx context.Context, walletID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = $2
		WHERE id = $3 AND balance + $1 >= 0`

	result, err := r.db.ExecContext(ctx, query, delta, time.Now(), walletID)
	if err != nil {
		return mapLockError(err, "failed to adjust wallet balance")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := sqlx.GetContext(ctx, r.db, &exists, `SELECT EXISTS(SELECT 1 FROM wallets WHERE id = $1)`, walletID); err != nil {
			return fmt.Errorf("failed to check wallet existence: %w", err)
		}
		if !exists {
			return apperrors.ErrWalletNotFound
		}
		return apperrors.ErrInsufficientFunds
	}
	return nil
}

// Deactivate marks the wallet inactive so it can no longer send or receive
func (r *WalletRepo) Deactivate(ctx context.Context, walletID uuid.UUID) error {
	query := `UPDATE wallets SET is_active = false, updated_at = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, time.Now(), walletID)
	if err != nil {
		return fmt.Errorf("failed to deactivate wallet: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrWalletNotFound
	}
	return nil
}
