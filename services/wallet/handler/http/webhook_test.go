package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/services/wallet/mocks"
	"github.com/stretchr/testify/assert"
)

const (
	testPaysendSecret = "paysend-webhook-secret"
	allowedIP         = "203.0.113.7"
)

func webhookConfig() *models.Config {
	return &models.Config{
		Webhook: models.WebhookConfig{
			PaysendSecret: testPaysendSecret,
			IPAllowlist:   []string{allowedIP},
		},
	}
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testPaysendSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookRequest(body []byte, sourceIP, signature, idempotencyKey string) *http.Request {
	request := httptest.NewRequest(http.MethodPost, "/internal/webhooks/paysend", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	request.Header.Set("X-Real-Ip", sourceIP)
	if signature != "" {
		request.Header.Set(HeaderPaysendSignature, signature)
	}
	if idempotencyKey != "" {
		request.Header.Set(HeaderIdempotencyKey, idempotencyKey)
	}
	return request
}

func TestWebhookHandler_Paysend_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED","recipient":{"phone_number":"+96170123456","amount":"75.50","currency":"USD"}}`)

	mockUC.EXPECT().
		ProcessPaysendWebhook(gomock.Any(), gomock.Any(), "delivery-1").
		DoAndReturn(func(_ context.Context, payload *models.PaysendWebhookPayload, _ string) (*models.WebhookAck, error) {
			assert.Equal(t, "px-12345", payload.TransactionID)
			assert.Equal(t, "COMPLETED", payload.Status)
			assert.Equal(t, "75.50", payload.Recipient.Amount)
			return &models.WebhookAck{TransactionID: "px-12345", Result: "processed"}, nil
		})

	e := echo.New()
	request := webhookRequest(body, allowedIP, signBody(body), "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "processed")
}

func TestWebhookHandler_Paysend_UnlistedIPRejectedBeforeSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A valid signature does not help from the wrong address; the
	// usecase is never consulted.
	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED"}`)

	e := echo.New()
	request := webhookRequest(body, "198.51.100.9", signBody(body), "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Unauthorized")
}

func TestWebhookHandler_Paysend_EmptyAllowlistDeniesEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	cfg := webhookConfig()
	cfg.Webhook.IPAllowlist = nil
	handler := NewWebhookHandler(mockUC, cfg)

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED"}`)

	e := echo.New()
	request := webhookRequest(body, allowedIP, signBody(body), "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookHandler_Paysend_BadSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED"}`)
	tampered := signBody([]byte(`{"transactionId":"px-99999","status":"COMPLETED"}`))

	e := echo.New()
	request := webhookRequest(body, allowedIP, tampered, "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Unauthorized")
}

func TestWebhookHandler_Paysend_MissingSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED"}`)

	e := echo.New()
	request := webhookRequest(body, allowedIP, "", "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWebhookHandler_Paysend_MissingIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte(`{"transactionId":"px-12345","status":"COMPLETED"}`)

	e := echo.New()
	request := webhookRequest(body, allowedIP, signBody(body), "")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookHandler_Paysend_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	body := []byte("not json at all")

	e := echo.New()
	request := webhookRequest(body, allowedIP, signBody(body), "delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.PaysendWebhook(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestWebhookHandler_VerifyCashOut_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	mockUC.EXPECT().
		VerifyCashOut(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.CashOutVerifyRequest) (*models.Transaction, error) {
			assert.Equal(t, "+96170123456", req.PhoneNumber)
			assert.Equal(t, "1A2B3C4D", req.WithdrawalCode)
			assert.Equal(t, "atm-delivery-1", req.IdempotencyKey)
			return &models.Transaction{ID: uuid.New(), Status: models.TransactionStatusCompleted}, nil
		})

	e := echo.New()
	body := []byte(`{"phone_number":"+96170123456","withdrawal_code":"1A2B3C4D"}`)
	request := httptest.NewRequest(http.MethodPost, "/internal/webhooks/cashout/verify", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	request.Header.Set("X-Real-Ip", allowedIP)
	request.Header.Set(HeaderIdempotencyKey, "atm-delivery-1")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.VerifyCashOut(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestWebhookHandler_VerifyCashOut_UnlistedIP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWebhookHandler(mockUC, webhookConfig())

	e := echo.New()
	body := []byte(`{"phone_number":"+96170123456","withdrawal_code":"1A2B3C4D"}`)
	request := httptest.NewRequest(http.MethodPost, "/internal/webhooks/cashout/verify", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	request.Header.Set("X-Real-Ip", "198.51.100.9")
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.VerifyCashOut(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
