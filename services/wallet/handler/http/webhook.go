package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	nrpkg "github.com/purplewallet/wallet-service/internal/pkg/newrelic"
	"github.com/purplewallet/wallet-service/internal/utils"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// HeaderPaysendSignature carries the hex HMAC-SHA256 of the raw body
const HeaderPaysendSignature = "X-Paysend-Signature"

// WebhookHandler handles inbound notifications from external gateways.
// Checks run in a fixed order: source IP first, then body signature,
// then idempotency. A request failing either of the first two gets a
// generic 401 and leaves no idempotency record behind.
type WebhookHandler struct {
	walletUC wallet.WalletUC
	cfg      *models.Config
}

// NewWebhookHandler creates a new webhook HTTP handler
func NewWebhookHandler(walletUC wallet.WalletUC, cfg *models.Config) *WebhookHandler {
	return &WebhookHandler{
		walletUC: walletUC,
		cfg:      cfg,
	}
}

// PaysendWebhook ingests a Paysend transaction notification
func (h *WebhookHandler) PaysendWebhook(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Webhook.Paysend")

	if !h.allowedSourceIP(c.RealIP()) {
		logger.Warn("Webhook from unlisted source IP",
			logger.String("client_ip", c.RealIP()))
		return utils.UnauthorizedResponse(c, "")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read request body")
	}

	if !h.validSignature(body, c.Request().Header.Get(HeaderPaysendSignature)) {
		logger.Warn("Webhook signature verification failed",
			logger.String("client_ip", c.RealIP()))
		return utils.UnauthorizedResponse(c, "")
	}

	var payload models.PaysendWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	idempotencyKey := c.Request().Header.Get(HeaderIdempotencyKey)
	if idempotencyKey == "" {
		return utils.BadRequestResponse(c, "Idempotency-Key header is required")
	}

	ack, err := h.walletUC.ProcessPaysendWebhook(c.Request().Context(), &payload, idempotencyKey)
	if err != nil {
		logger.Error("Failed to process provider webhook",
			logger.String("provider_transaction_id", payload.TransactionID),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, ack)
}

// VerifyCashOut confirms an ATM withdrawal code on behalf of the ATM
// gateway
func (h *WebhookHandler) VerifyCashOut(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Webhook.VerifyCashOut")

	if !h.allowedSourceIP(c.RealIP()) {
		logger.Warn("Cash-out verify from unlisted source IP",
			logger.String("client_ip", c.RealIP()))
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CashOutVerifyRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	req.IdempotencyKey = c.Request().Header.Get(HeaderIdempotencyKey)

	result, err := h.walletUC.VerifyCashOut(c.Request().Context(), &req)
	if err != nil {
		logger.Error("Failed to verify cash-out code",
			logger.String("client_ip", c.RealIP()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Cash-out verified successfully", result)
}

// allowedSourceIP reports whether ip is in the configured allow-list.
// An empty allow-list denies everything; the gate is never open by
// accident.
func (h *WebhookHandler) allowedSourceIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, allowed := range h.cfg.Webhook.IPAllowlist {
		if allowedIP := net.ParseIP(allowed); allowedIP != nil && allowedIP.Equal(parsed) {
			return true
		}
	}
	return false
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if signature == "" || h.cfg.Webhook.PaysendSecret == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.cfg.Webhook.PaysendSecret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
