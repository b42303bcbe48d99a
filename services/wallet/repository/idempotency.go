package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/database"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
)

const (
	idempotencyStateInFlight = "in_flight"
	statePrefixCompleted     = "completed:"
)

// IdempotencyRepo guards mutating operations against duplicate delivery
// using Redis. A key is reserved with SETNX before the operation runs and
// rewritten with the serialized result once it commits, so retries of a
// finished request replay the original response instead of re-executing.
type IdempotencyRepo struct {
	cfg   *models.Config
	redis *database.RedisClient
}

// NewIdempotencyRepo creates an idempotency guard over Redis
func NewIdempotencyRepo(cfg *models.Config, redisClient *database.RedisClient) *IdempotencyRepo {
	return &IdempotencyRepo{cfg: cfg, redis: redisClient}
}

func (r *IdempotencyRepo) key(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}

func (r *IdempotencyRepo) ttl() time.Duration {
	hours := r.cfg.Wallet.IdempotencyTTLHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// Reserve claims the key for the current request. It returns the cached
// result bytes when a previous request with the same key already completed,
// nil when the key was freshly reserved, and a duplicate-request error when
// another request holding the key is still running.
func (r *IdempotencyRepo) Reserve(ctx context.Context, scope, key string) ([]byte, error) {
	redisKey := r.key(scope, key)

	set, err := r.redis.SetNX(ctx, redisKey, idempotencyStateInFlight, r.ttl())
	if err != nil {
		return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if set {
		return nil, nil
	}

	state, err := r.redis.Get(ctx, redisKey)
	if err != nil {
		// Key expired between SETNX and GET; treat the retry as a duplicate
		// rather than racing a second execution.
		if database.IsNil(err) {
			return nil, apperrors.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to read idempotency state: %w", err)
	}

	if !strings.HasPrefix(state, statePrefixCompleted) {
		return nil, apperrors.ErrDuplicateRequest
	}
	return []byte(strings.TrimPrefix(state, statePrefixCompleted)), nil
}

// Commit stores the serialized result under the key so later retries
// observe the completed state
func (r *IdempotencyRepo) Commit(ctx context.Context, scope, key string, result interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency result: %w", err)
	}
	if err := r.redis.Set(ctx, r.key(scope, key), statePrefixCompleted+string(data), r.ttl()); err != nil {
		return fmt.Errorf("failed to commit idempotency key: %w", err)
	}
	return nil
}

// Release frees the key after a failed operation so the caller can retry
func (r *IdempotencyRepo) Release(ctx context.Context, scope, key string) error {
	if err := r.redis.Delete(ctx, r.key(scope, key)); err != nil {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}
