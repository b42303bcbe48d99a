package database

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_ConnectionError(t *testing.T) {
	// Test with invalid configuration
	config := models.RedisConfig{
		Host:     "invalid-host",
		Port:     9999,
		Password: "",
		DB:       0,
		PoolSize: 10,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{client: db}

	ctx := context.Background()
	key := "txlist:user-1:1:20"
	value := "cached-payload"
	expiration := 15 * time.Minute

	mock.ExpectSet(key, value, expiration).SetVal("OK")

	err := client.Set(ctx, key, value, expiration)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_SetNX(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		value          interface{}
		expiration     time.Duration
		mockResult     bool
		mockError      error
		expectedResult bool
		expectedError  bool
	}{
		{
			name:           "Key set successfully",
			key:            "idempotency:transaction:key-1",
			value:          "in_flight",
			expiration:     24 * time.Hour,
			mockResult:     true,
			mockError:      nil,
			expectedResult: true,
			expectedError:  false,
		},
		{
			name:           "Key already exists",
			key:            "idempotency:transaction:key-2",
			value:          "in_flight",
			expiration:     24 * time.Hour,
			mockResult:     false,
			mockError:      nil,
			expectedResult: false,
			expectedError:  false,
		},
		{
			name:           "Redis error",
			key:            "idempotency:transaction:key-3",
			value:          "in_flight",
			expiration:     24 * time.Hour,
			mockResult:     false,
			mockError:      redis.Nil,
			expectedResult: false,
			expectedError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			client := &RedisClient{client: db}

			ctx := context.Background()

			if tt.mockError != nil {
				mock.ExpectSetNX(tt.key, tt.value, tt.expiration).SetErr(tt.mockError)
			} else {
				mock.ExpectSetNX(tt.key, tt.value, tt.expiration).SetVal(tt.mockResult)
			}

			result, err := client.SetNX(ctx, tt.key, tt.value, tt.expiration)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedResult, result)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisClient_Get(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		mockValue     string
		mockError     error
		expectedValue string
		expectedError bool
	}{
		{
			name:          "Key exists",
			key:           "idempotency:transaction:key-1",
			mockValue:     `{"status":"completed"}`,
			mockError:     nil,
			expectedValue: `{"status":"completed"}`,
			expectedError: false,
		},
		{
			name:          "Key does not exist",
			key:           "idempotency:transaction:missing",
			mockValue:     "",
			mockError:     redis.Nil,
			expectedValue: "",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			client := &RedisClient{client: db}

			ctx := context.Background()

			if tt.mockError != nil {
				mock.ExpectGet(tt.key).SetErr(tt.mockError)
			} else {
				mock.ExpectGet(tt.key).SetVal(tt.mockValue)
			}

			value, err := client.Get(ctx, tt.key)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedValue, value)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisClient_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{client: db}

	ctx := context.Background()
	key := "txlist:user-1:1:20"

	mock.ExpectDel(key).SetVal(1)

	err := client.Delete(ctx, key)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(redis.Nil))
	assert.False(t, IsNil(nil))
	assert.False(t, IsNil(assert.AnError))
}
