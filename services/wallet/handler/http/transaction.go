package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/logger"
	"github.com/purplewallet/wallet-service/internal/pkg/middleware"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	nrpkg "github.com/purplewallet/wallet-service/internal/pkg/newrelic"
	"github.com/purplewallet/wallet-service/internal/utils"
	"github.com/purplewallet/wallet-service/services/wallet"
	"github.com/shopspring/decimal"
)

// HeaderIdempotencyKey carries the client's idempotency key for
// mutating transaction requests
const HeaderIdempotencyKey = "Idempotency-Key"

// TransactionHandler handles HTTP requests for transaction operations
type TransactionHandler struct {
	walletUC wallet.WalletUC
}

// NewTransactionHandler creates a new transaction HTTP handler
func NewTransactionHandler(walletUC wallet.WalletUC) *TransactionHandler {
	return &TransactionHandler{
		walletUC: walletUC,
	}
}

// CreateTransaction processes a deposit, withdrawal or transfer request
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transaction.Create")

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
	req.IdempotencyKey = c.Request().Header.Get(HeaderIdempotencyKey)

	nrpkg.AddTransactionAttribute(txn, "transaction.type", string(req.Type))

	result, err := h.walletUC.Process(c.Request().Context(), &req)
	if err != nil {
		logger.Error("Failed to process transaction",
			logger.String("user_id", userID.String()),
			logger.String("type", string(req.Type)),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Transaction processed successfully", result)
}

// ListTransactions returns a filtered, ordered page of the caller's
// transaction history
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transaction.List")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	filter, err := parseListFilter(c)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	transactions, err := h.walletUC.ListTransactions(c.Request().Context(), userID, filter)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transactions retrieved successfully", transactions)
}

// Accept settles a pending transfer in the recipient's favor
func (h *TransactionHandler) Accept(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transaction.Accept")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	result, err := h.walletUC.Accept(c.Request().Context(), txID, userID)
	if err != nil {
		logger.Error("Failed to accept transfer",
			logger.String("transaction_id", txID.String()),
			logger.String("user_id", userID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transfer accepted successfully", result)
}

// Reject returns a pending transfer's held funds to the sender
func (h *TransactionHandler) Reject(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Transaction.Reject")

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	result, err := h.walletUC.Reject(c.Request().Context(), txID, userID)
	if err != nil {
		logger.Error("Failed to reject transfer",
			logger.String("transaction_id", txID.String()),
			logger.String("user_id", userID.String()),
			logger.Err(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Transfer rejected successfully", result)
}

func parseListFilter(c echo.Context) (*models.TransactionFilter, error) {
	filter := &models.TransactionFilter{
		Type:          models.TransactionType(c.QueryParam("type")),
		FundingSource: models.FundingSource(c.QueryParam("funding_source")),
		Status:        models.TransactionStatus(c.QueryParam("status")),
		Reference:     c.QueryParam("reference"),
		OrderBy:       c.QueryParam("order_by"),
		Descending:    c.QueryParam("order") != "asc",
	}

	var err error
	if filter.Page, err = intQueryParam(c, "page", 1); err != nil {
		return nil, err
	}
	if filter.PageSize, err = intQueryParam(c, "page_size", 20); err != nil {
		return nil, err
	}
	if filter.AmountMin, err = decimalQueryParam(c, "amount_min"); err != nil {
		return nil, err
	}
	if filter.AmountMax, err = decimalQueryParam(c, "amount_max"); err != nil {
		return nil, err
	}
	if filter.CreatedAfter, err = timeQueryParam(c, "created_after"); err != nil {
		return nil, err
	}
	if filter.CreatedBefore, err = timeQueryParam(c, "created_before"); err != nil {
		return nil, err
	}
	if filter.ExpiresAfter, err = timeQueryParam(c, "expires_after"); err != nil {
		return nil, err
	}
	if filter.ExpiresBefore, err = timeQueryParam(c, "expires_before"); err != nil {
		return nil, err
	}

	if raw := c.QueryParam("counterparty"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrorInvalidParam("counterparty")
		}
		filter.Counterparty = &id
	}
	return filter, nil
}

func apperrorInvalidParam(name string) error {
	return apperrors.Newf(apperrors.ValidationError, "invalid query parameter: %s", name)
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, apperrorInvalidParam(name)
	}
	return value, nil
}

func decimalQueryParam(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperrorInvalidParam(name)
	}
	return &value, nil
}

func timeQueryParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperrorInvalidParam(name)
	}
	return &value, nil
}
