package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/middleware"
)

// Callers permitted on the internal webhook surface.
const (
	CallerPaysendGateway = "paysend-gateway"
	CallerATMGateway     = "atm-gateway"
)

// RegisterRoutes registers all HTTP routes. Extra middlewares apply to
// the user-facing group only; the internal webhook surface is guarded
// by API keys and source IP checks instead.
func (h *Handler) RegisterRoutes(e *echo.Echo, apiKeyMiddleware *middleware.APIKeyMiddleware, userMiddlewares ...echo.MiddlewareFunc) {
	// User-facing routes (JWT required)
	api := e.Group("", append([]echo.MiddlewareFunc{middleware.JWTAuthMiddleware(h.cfg.JWT)}, userMiddlewares...)...)

	api.POST("/wallets", h.walletHTTP.CreateWallet)
	api.GET("/wallets/me", h.walletHTTP.GetMyWallet)
	api.POST("/wallets/cash-out", h.walletHTTP.CashOut)

	api.POST("/transactions", h.transactionHTTP.CreateTransaction)
	api.GET("/transactions", h.transactionHTTP.ListTransactions)
	api.POST("/transactions/:id/accept", h.transactionHTTP.Accept)
	api.POST("/transactions/:id/reject", h.transactionHTTP.Reject)

	// Gateway-to-service routes (API key required)
	internal := e.Group("/internal", apiKeyMiddleware.Validate(CallerPaysendGateway, CallerATMGateway))
	internal.POST("/webhooks/paysend", h.webhookHTTP.PaysendWebhook)
	internal.POST("/webhooks/cashout/verify", h.webhookHTTP.VerifyCashOut)
}
