package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

// TransactionRepo implements transaction ledger persistence over PostgreSQL
type TransactionRepo struct {
	cfg *models.Config
	db  sqlx.ExtContext
}

// NewTransactionRepo creates a transaction repository bound to the connection pool
func NewTransactionRepo(cfg *models.Config, db *sqlx.DB) *TransactionRepo {
	return &TransactionRepo{cfg: cfg, db: db}
}

func newTxTransactionRepo(cfg *models.Config, tx *sqlx.Tx) *TransactionRepo {
	return &TransactionRepo{cfg: cfg, db: tx}
}

const transactionColumns = `id, type, amount, funding_source, sender_wallet_id, recipient_wallet_id, status, reference, idempotency_key, expiry_time, created_at, updated_at`

// Create inserts a new transaction row
func (r *TransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, type, amount, funding_source, sender_wallet_id, recipient_wallet_id, status, reference, idempotency_key, expiry_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.Type, tx.Amount, tx.FundingSource, tx.SenderWalletID, tx.RecipientWalletID,
		tx.Status, tx.Reference, tx.IdempotencyKey, tx.ExpiryTime, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepo) GetByID(ctx context.Context, txID uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var t models.Transaction
	err := sqlx.GetContext(ctx, r.db, &t, query, txID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

// GetByIDForUpdate locks the transaction row for the remainder of the
// enclosing database transaction
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, txID uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	var t models.Transaction
	err := sqlx.GetContext(ctx, r.db, &t, query, txID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, mapLockError(err, "failed to lock transaction")
	}
	return &t, nil
}

// GetByReference retrieves a transaction by its unique reference
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1`

	var t models.Transaction
	err := sqlx.GetContext(ctx, r.db, &t, query, reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by reference: %w", err)
	}
	return &t, nil
}

// GetPendingByWithdrawalCode locks the pending ATM withdrawal whose
// confirmation code and wallet phone number both match. The code is embedded
// in the reference, so matching on reference plus phone number identifies
// exactly one row.
func (r *TransactionRepo) GetPendingByWithdrawalCode(ctx context.Context, phoneNumber, code string) (*models.Transaction, error) {
	query := `
		SELECT t.id, t.type, t.amount, t.funding_source, t.sender_wallet_id, t.recipient_wallet_id, t.status, t.reference, t.idempotency_key, t.expiry_time, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.sender_wallet_id
		WHERE w.phone_number = $1
		  AND t.reference = $2
		  AND t.type = $3
		  AND t.status = $4
		FOR UPDATE OF t`

	reference := "BLF-ATM-" + strings.ToUpper(code)

	var t models.Transaction
	err := sqlx.GetContext(ctx, r.db, &t, query,
		phoneNumber, reference, models.TransactionTypeWithdrawal, models.TransactionStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, mapLockError(err, "failed to lock withdrawal by code")
	}
	return &t, nil
}

// UpdateStatus moves a transaction to a new lifecycle status
func (r *TransactionRepo) UpdateStatus(ctx context.Context, txID uuid.UUID, status models.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), txID)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ListPendingExpired returns IDs of pending transactions whose expiry time
// has passed, oldest first, so the sweeper can settle each in its own
// unit of work
func (r *TransactionRepo) ListPendingExpired(ctx context.Context, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM transactions
		WHERE status = $1 AND expiry_time IS NOT NULL AND expiry_time < $2
		ORDER BY expiry_time ASC
		LIMIT $3`

	var ids []uuid.UUID
	err := sqlx.SelectContext(ctx, r.db, &ids, query, models.TransactionStatusPending, time.Now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired transactions: %w", err)
	}
	return ids, nil
}

// List returns transactions involving the filter's wallet in the filter's
// order, applying the optional criteria and pagination
func (r *TransactionRepo) List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE (sender_wallet_id = $1 OR recipient_wallet_id = $1)`)

	args := []interface{}{filter.WalletID}
	next := func(arg interface{}) string {
		args = append(args, arg)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.AmountMin != nil {
		sb.WriteString(" AND amount >= " + next(*filter.AmountMin))
	}
	if filter.AmountMax != nil {
		sb.WriteString(" AND amount <= " + next(*filter.AmountMax))
	}
	if filter.Type != "" {
		sb.WriteString(" AND type = " + next(filter.Type))
	}
	if filter.FundingSource != "" {
		sb.WriteString(" AND funding_source = " + next(filter.FundingSource))
	}
	if filter.Status != "" {
		sb.WriteString(" AND status = " + next(filter.Status))
	}
	if filter.Reference != "" {
		sb.WriteString(" AND reference ILIKE " + next("%"+filter.Reference+"%"))
	}
	if filter.CreatedAfter != nil {
		sb.WriteString(" AND created_at >= " + next(*filter.CreatedAfter))
	}
	if filter.CreatedBefore != nil {
		sb.WriteString(" AND created_at <= " + next(*filter.CreatedBefore))
	}
	if filter.ExpiresAfter != nil {
		sb.WriteString(" AND expiry_time >= " + next(*filter.ExpiresAfter))
	}
	if filter.ExpiresBefore != nil {
		sb.WriteString(" AND expiry_time <= " + next(*filter.ExpiresBefore))
	}
	if filter.Counterparty != nil {
		arg := next(*filter.Counterparty)
		sb.WriteString(" AND (sender_wallet_id = " + arg + " OR recipient_wallet_id = " + arg + ")")
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case models.OrderByAmount, models.OrderByCreatedAt, models.OrderByExpiryTime, models.OrderByStatus:
	default:
		orderBy = models.OrderByCreatedAt
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	sb.WriteString(" ORDER BY " + orderBy + " " + direction)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	sb.WriteString(" LIMIT " + next(pageSize))
	sb.WriteString(" OFFSET " + next((page-1)*pageSize))

	var transactions []*models.Transaction
	err := sqlx.SelectContext(ctx, r.db, &transactions, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
