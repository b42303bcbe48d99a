package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/database"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return database.NewRedisClientFromClient(client), mr
}

func idemConfig() *models.Config {
	return &models.Config{
		Wallet: models.WalletConfig{IdempotencyTTLHours: 24},
	}
}

func TestIdempotencyRepo_ReserveFresh(t *testing.T) {
	redisClient, mr := setupMiniRedis(t)
	defer mr.Close()

	repo := NewIdempotencyRepo(idemConfig(), redisClient)

	cached, err := repo.Reserve(context.Background(), "transaction", "key-1")
	assert.NoError(t, err)
	assert.Nil(t, cached)

	// The reservation is visible with a TTL
	assert.True(t, mr.Exists("idempotency:transaction:key-1"))
	assert.Greater(t, mr.TTL("idempotency:transaction:key-1").Hours(), 23.0)
}

func TestIdempotencyRepo_ReserveInFlightDuplicate(t *testing.T) {
	redisClient, mr := setupMiniRedis(t)
	defer mr.Close()

	repo := NewIdempotencyRepo(idemConfig(), redisClient)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, "transaction", "key-1")
	require.NoError(t, err)

	cached, err := repo.Reserve(ctx, "transaction", "key-1")
	assert.Nil(t, cached)
	assert.True(t, apperrors.Is(err, apperrors.DuplicateRequest))
}

func TestIdempotencyRepo_ReserveReplaysCommittedResult(t *testing.T) {
	redisClient, mr := setupMiniRedis(t)
	defer mr.Close()

	repo := NewIdempotencyRepo(idemConfig(), redisClient)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, "transaction", "key-1")
	require.NoError(t, err)

	result := map[string]string{"reference": "TRANSFER-1A2B3C4D"}
	require.NoError(t, repo.Commit(ctx, "transaction", "key-1", result))

	cached, err := repo.Reserve(ctx, "transaction", "key-1")
	assert.NoError(t, err)
	require.NotNil(t, cached)

	var replayed map[string]string
	require.NoError(t, json.Unmarshal(cached, &replayed))
	assert.Equal(t, result, replayed)
}

func TestIdempotencyRepo_ReleaseAllowsRetry(t *testing.T) {
	redisClient, mr := setupMiniRedis(t)
	defer mr.Close()

	repo := NewIdempotencyRepo(idemConfig(), redisClient)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, "transaction", "key-1")
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, "transaction", "key-1"))

	cached, err := repo.Reserve(ctx, "transaction", "key-1")
	assert.NoError(t, err)
	assert.Nil(t, cached)
}

func TestIdempotencyRepo_ScopesAreIndependent(t *testing.T) {
	redisClient, mr := setupMiniRedis(t)
	defer mr.Close()

	repo := NewIdempotencyRepo(idemConfig(), redisClient)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, "transaction", "key-1")
	require.NoError(t, err)

	cached, err := repo.Reserve(ctx, "webhook:paysend", "key-1")
	assert.NoError(t, err)
	assert.Nil(t, cached)
}
