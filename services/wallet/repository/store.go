package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	nrpkg "github.com/purplewallet/wallet-service/internal/pkg/newrelic"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// lock_not_available, raised when SET LOCAL lock_timeout fires
const pgLockNotAvailable = "55P03"

// Store runs units of work inside a single database transaction with a
// bounded lock wait, so two requests contending for the same wallet rows
// fail fast instead of queueing behind each other.
type Store struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewStore creates a transactional store over the connection pool
func NewStore(cfg *models.Config, db *sqlx.DB) *Store {
	return &Store{cfg: cfg, db: db}
}

type txRepos struct {
	wallets      *WalletRepo
	transactions *TransactionRepo
}

func (r txRepos) Wallets() wallet.WalletRepo           { return r.wallets }
func (r txRepos) Transactions() wallet.TransactionRepo { return r.transactions }

// WithinTx begins a database transaction, binds the repositories to it and
// runs fn. The transaction commits only when fn returns nil; any error or
// panic rolls everything back. Each unit of work is reported as one
// segment when a New Relic transaction is in flight.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos wallet.TxRepos) error) error {
	return nrpkg.WithSegment(ctx, "store.WithinTx", func() error {
		return s.withinTx(ctx, fn)
	})
}

func (s *Store) withinTx(ctx context.Context, fn func(ctx context.Context, repos wallet.TxRepos) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("Failed to rollback after panic", logger.Any("panic", p), logger.Err(rbErr))
			}
			panic(p)
		}
	}()

	lockTimeout := s.cfg.Wallet.LockTimeoutMillis
	if lockTimeout <= 0 {
		lockTimeout = 3000
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockTimeout)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to rollback transaction", logger.Err(rbErr))
		}
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}

	repos := txRepos{
		wallets:      newTxWalletRepo(s.cfg, tx),
		transactions: newTxTransactionRepo(s.cfg, tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to rollback transaction", logger.Err(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapLockError converts a lock wait timeout into the domain lock-timeout
// error; everything else is wrapped with the caller's context message.
func mapLockError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
		return apperrors.ErrLockTimeout
	}
	return fmt.Errorf("%s: %w", msg, err)
}
