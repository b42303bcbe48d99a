package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/purplewallet/wallet-service/internal/pkg/database"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

// ListCacheRepo caches transaction list pages in Redis. Every user has a
// generation counter; cache keys embed the current generation, so
// invalidation is a single INCR that orphans every cached page at once.
// The cache is best effort: any Redis failure falls through to the database.
type ListCacheRepo struct {
	cfg   *models.Config
	redis *database.RedisClient
}

// NewListCacheRepo creates a transaction list cache over Redis
func NewListCacheRepo(cfg *models.Config, redisClient *database.RedisClient) *ListCacheRepo {
	return &ListCacheRepo{cfg: cfg, redis: redisClient}
}

func (r *ListCacheRepo) ttl() time.Duration {
	minutes := r.cfg.Wallet.ListCacheTTLMinutes
	if minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

func (r *ListCacheRepo) generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("txlist:gen:%s", userID)
}

func (r *ListCacheRepo) pageKey(ctx context.Context, userID uuid.UUID, page, pageSize int) (string, error) {
	gen, err := r.redis.Get(ctx, r.generationKey(userID))
	if err != nil {
		if database.IsNil(err) {
			gen = "0"
		} else {
			return "", err
		}
	}
	return fmt.Sprintf("txlist:%s:%s:%d:%d", userID, gen, page, pageSize), nil
}

// Get returns the cached page when present
func (r *ListCacheRepo) Get(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*models.Transaction, bool) {
	key, err := r.pageKey(ctx, userID, page, pageSize)
	if err != nil {
		logger.Warn("Failed to resolve transaction list cache key", logger.Err(err))
		return nil, false
	}

	data, err := r.redis.Get(ctx, key)
	if err != nil {
		if !database.IsNil(err) {
			logger.Warn("Failed to read transaction list cache", logger.Err(err))
		}
		return nil, false
	}

	var transactions []*models.Transaction
	if err := json.Unmarshal([]byte(data), &transactions); err != nil {
		logger.Warn("Failed to decode cached transaction list", logger.Err(err))
		return nil, false
	}
	return transactions, true
}

// Set caches a page of transactions for the user
func (r *ListCacheRepo) Set(ctx context.Context, userID uuid.UUID, page, pageSize int, transactions []*models.Transaction) {
	key, err := r.pageKey(ctx, userID, page, pageSize)
	if err != nil {
		logger.Warn("Failed to resolve transaction list cache key", logger.Err(err))
		return
	}

	data, err := json.Marshal(transactions)
	if err != nil {
		logger.Warn("Failed to encode transaction list for cache", logger.Err(err))
		return
	}
	if err := r.redis.Set(ctx, key, string(data), r.ttl()); err != nil {
		logger.Warn("Failed to write transaction list cache", logger.Err(err))
	}
}

// Invalidate orphans all cached pages for the user by bumping the
// generation counter
func (r *ListCacheRepo) Invalidate(ctx context.Context, userID uuid.UUID) {
	if _, err := r.redis.Incr(ctx, r.generationKey(userID)); err != nil {
		logger.Warn("Failed to invalidate transaction list cache", logger.Err(err))
	}
}
