package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func nullableID(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func transactionRows(tx *models.Transaction) *sqlmock.Rows {
	var key interface{}
	if tx.IdempotencyKey != nil {
		key = *tx.IdempotencyKey
	}
	var expiry interface{}
	if tx.ExpiryTime != nil {
		expiry = *tx.ExpiryTime
	}
	return sqlmock.NewRows([]string{
		"id", "type", "amount", "funding_source", "sender_wallet_id", "recipient_wallet_id",
		"status", "reference", "idempotency_key", "expiry_time", "created_at", "updated_at",
	}).AddRow(
		tx.ID.String(), string(tx.Type), tx.Amount.String(), string(tx.FundingSource),
		nullableID(tx.SenderWalletID), nullableID(tx.RecipientWalletID),
		string(tx.Status), tx.Reference, key, expiry, tx.CreatedAt, tx.UpdatedAt,
	)
}

func testTransaction() *models.Transaction {
	senderID := uuid.New()
	return &models.Transaction{
		ID:             uuid.New(),
		Type:           models.TransactionTypeWithdrawal,
		Amount:         decimal.NewFromInt(25),
		FundingSource:  models.FundingSourceBLFATM,
		SenderWalletID: &senderID,
		Status:         models.TransactionStatusPending,
		Reference:      "BLF-ATM-1A2B3C4D",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestTransactionRepo_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	tx := testTransaction()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(tx.ID, tx.Type, sqlmock.AnyArg(), tx.FundingSource, tx.SenderWalletID, nil,
			tx.Status, tx.Reference, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), tx)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByIDForUpdate_LocksRow(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	tx := testTransaction()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1 FOR UPDATE")).
		WithArgs(tx.ID).
		WillReturnRows(transactionRows(tx))

	got, err := repo.GetByIDForUpdate(context.Background(), tx.ID)
	assert.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	txID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1")).
		WithArgs(txID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetByID(context.Background(), txID)
	assert.Nil(t, got)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestTransactionRepo_GetPendingByWithdrawalCode(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	tx := testTransaction()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF t")).
		WithArgs("+96170123456", "BLF-ATM-1A2B3C4D", models.TransactionTypeWithdrawal, models.TransactionStatusPending).
		WillReturnRows(transactionRows(tx))

	got, err := repo.GetPendingByWithdrawalCode(context.Background(), "+96170123456", "1a2b3c4d")
	assert.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	txID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET status = $1")).
		WithArgs(models.TransactionStatusCompleted, sqlmock.AnyArg(), txID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), txID, models.TransactionStatusCompleted)
	assert.NoError(t, err)
}

func TestTransactionRepo_UpdateStatus_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	txID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET status = $1")).
		WithArgs(models.TransactionStatusExpired, sqlmock.AnyArg(), txID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), txID, models.TransactionStatusExpired)
	assert.True(t, apperrors.Is(err, apperrors.NotFound))
}

func TestTransactionRepo_ListPendingExpired(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	id1, id2 := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("expiry_time IS NOT NULL AND expiry_time < $2")).
		WithArgs(models.TransactionStatusPending, sqlmock.AnyArg(), 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id1).AddRow(id2))

	ids, err := repo.ListPendingExpired(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id1, id2}, ids)
}

func TestTransactionRepo_List_DefaultOrdering(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	walletID := uuid.New()
	tx := testTransaction()

	mock.ExpectQuery(regexp.QuoteMeta("(sender_wallet_id = $1 OR recipient_wallet_id = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs(walletID, 20, 0).
		WillReturnRows(transactionRows(tx))

	got, err := repo.List(context.Background(), &models.TransactionFilter{WalletID: walletID, Descending: true})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, tx.ID, got[0].ID)
}

func TestTransactionRepo_List_AscendingOnDefaultColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	walletID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at ASC LIMIT $2 OFFSET $3")).
		WithArgs(walletID, 20, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.List(context.Background(), &models.TransactionFilter{WalletID: walletID})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_List_WithFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	repo := NewTransactionRepo(&models.Config{}, db)
	walletID := uuid.New()
	amountMin := decimal.NewFromInt(10)

	mock.ExpectQuery(regexp.QuoteMeta("AND amount >= $2 AND type = $3 AND status = $4 AND reference ILIKE $5 ORDER BY amount ASC LIMIT $6 OFFSET $7")).
		WithArgs(walletID, sqlmock.AnyArg(), models.TransactionTypeTransfer, models.TransactionStatusPending, "%TRANSFER%", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.List(context.Background(), &models.TransactionFilter{
		WalletID:  walletID,
		AmountMin: &amountMin,
		Type:      models.TransactionTypeTransfer,
		Status:    models.TransactionStatusPending,
		Reference: "TRANSFER",
		OrderBy:   models.OrderByAmount,
		Page:      2,
		PageSize:  10,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
