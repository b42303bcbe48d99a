package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("NewClient with invalid address", func(t *testing.T) {
		client, err := NewClient("invalid://address")
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to NATS server")
	})

	t.Run("NewClient with empty address", func(t *testing.T) {
		client, err := NewClient("")
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

func TestClient_IsConnected_NilConn(t *testing.T) {
	client := &Client{}
	assert.False(t, client.IsConnected())
}
