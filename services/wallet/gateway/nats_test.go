package gateway

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	natspkg "github.com/purplewallet/wallet-service/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNatsURL = "nats://127.0.0.1:8370"

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = 8370
	testNatsServer := natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

func TestPublishNotification_Success(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err, "Failed to connect to NATS server")
	defer nc.Close()

	event := &models.NotificationEvent{
		UserID:       uuid.New(),
		Action:       models.NotificationActionReceived,
		Amount:       "30",
		Currency:     models.CurrencyUSD,
		Counterparty: "********3456",
		Reference:    "TRANSFER-1A2B3C4D",
		Status:       models.TransactionStatusPending,
		Timestamp:    time.Now(),
	}

	msgCh := make(chan *nats.Msg, 1)
	sub, err := nc.Subscribe(SubjectWalletNotifications, func(msg *nats.Msg) {
		msgCh <- msg
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	walletGW := NewWalletGW(nc)
	err = walletGW.PublishNotification(context.Background(), event)
	require.NoError(t, err)

	select {
	case msg := <-msgCh:
		var received models.NotificationEvent
		require.NoError(t, json.Unmarshal(msg.Data, &received))

		assert.Equal(t, event.UserID, received.UserID)
		assert.Equal(t, event.Action, received.Action)
		assert.Equal(t, event.Amount, received.Amount)
		assert.Equal(t, event.Counterparty, received.Counterparty)
		assert.Equal(t, event.Reference, received.Reference)
		assert.Equal(t, event.Status, received.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("Did not receive published notification")
	}
}
