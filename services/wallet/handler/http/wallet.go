package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/middleware"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	nrpkg "github.com/purplewallet/wallet-service/internal/pkg/newrelic"
	"github.com/purplewallet/wallet-service/internal/utils"
	"github.com/purplewallet/wallet-service/services/wallet"
)

// WalletHandler handles HTTP requests for wallet operations
type WalletHandler struct {
	walletUC wallet.WalletUC
}

// NewWalletHandler creates a new wallet HTTP handler
func NewWalletHandler(walletUC wallet.WalletUC) *WalletHandler {
	return &WalletHandler{
		walletUC: walletUC,
	}
}

// CreateWallet opens a wallet for the authenticated user
func (h *WalletHandler) CreateWallet(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Wallet.CreateWallet")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.CreateWalletRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	w, err := h.walletUC.CreateWallet(c.Request().Context(), userID, &req)
	if err != nil {
		logger.Error("Failed to create wallet",
			logger.String("user_id", userID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Wallet created successfully", w)
}

// GetMyWallet returns the authenticated user's wallet
func (h *WalletHandler) GetMyWallet(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Wallet.GetMyWallet")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	w, err := h.walletUC.GetWallet(c.Request().Context(), userID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Wallet retrieved successfully", w)
}

// CashOut requests an ATM withdrawal. The funds are held and a
// confirmation code is returned once; the code is shown to the user and
// typed into the ATM.
func (h *WalletHandler) CashOut(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Wallet.CashOut")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.ProcessRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	req.UserID = userID
	req.Type = models.TransactionTypeWithdrawal
	req.FundingSource = models.FundingSourceBLFATM
	req.IdempotencyKey = c.Request().Header.Get(HeaderIdempotencyKey)

	result, err := h.walletUC.Process(c.Request().Context(), &req)
	if err != nil {
		logger.Error("Failed to request cash-out",
			logger.String("user_id", userID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Cash-out requested successfully", result)
}
