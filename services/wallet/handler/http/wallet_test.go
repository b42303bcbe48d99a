package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/services/wallet/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWalletHandler_CreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().
		CreateWallet(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, req *models.CreateWalletRequest) (*models.Wallet, error) {
			assert.Equal(t, "+96170123456", req.PhoneNumber)
			return &models.Wallet{
				ID:          uuid.New(),
				UserID:      userID,
				PhoneNumber: req.PhoneNumber,
				Currency:    models.CurrencyUSD,
				IsActive:    true,
			}, nil
		})

	e := echo.New()
	body := []byte(`{"phone_number":"+96170123456"}`)
	request := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.CreateWallet(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestWalletHandler_CreateWallet_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	e := echo.New()
	request := httptest.NewRequest(http.MethodPost, "/wallets", nil)
	recorder := httptest.NewRecorder()
	c := e.NewContext(request, recorder)

	err := handler.CreateWallet(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestWalletHandler_CreateWallet_DuplicateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().
		CreateWallet(gomock.Any(), userID, gomock.Any()).
		Return(nil, apperrors.New(apperrors.InvalidState, "user already has a wallet"))

	e := echo.New()
	body := []byte(`{"phone_number":"+96170123456"}`)
	request := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.CreateWallet(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestWalletHandler_GetMyWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().
		GetWallet(gomock.Any(), userID).
		Return(&models.Wallet{ID: uuid.New(), UserID: userID, Balance: decimal.NewFromInt(80)}, nil)

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/wallets/me", nil)
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.GetMyWallet(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestWalletHandler_GetMyWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().GetWallet(gomock.Any(), userID).Return(nil, apperrors.ErrWalletNotFound)

	e := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/wallets/me", nil)
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.GetMyWallet(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWalletHandler_CashOut_ForcesATMWithdrawal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().
		Process(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.ProcessRequest) (*models.ProcessResult, error) {
			assert.Equal(t, userID, req.UserID)
			assert.Equal(t, models.TransactionTypeWithdrawal, req.Type)
			assert.Equal(t, models.FundingSourceBLFATM, req.FundingSource)
			assert.Equal(t, "client-key-1", req.IdempotencyKey)
			return &models.ProcessResult{
				Transaction: &models.Transaction{
					ID:     uuid.New(),
					Status: models.TransactionStatusPending,
				},
				WithdrawalCode: "1A2B3C4D",
			}, nil
		})

	e := echo.New()
	// The client cannot pick another type or funding source
	body := []byte(`{"type":"DEPOSIT","amount":40,"funding_source":"INTERNAL"}`)
	request := httptest.NewRequest(http.MethodPost, "/wallets/cash-out", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	request.Header.Set(HeaderIdempotencyKey, "client-key-1")
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.CashOut(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestWalletHandler_CashOut_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockWalletUC(ctrl)
	handler := NewWalletHandler(mockUC)

	userID := uuid.New()

	mockUC.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInsufficientFunds)

	e := echo.New()
	body := []byte(`{"amount":4000}`)
	request := httptest.NewRequest(http.MethodPost, "/wallets/cash-out", bytes.NewBuffer(body))
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recorder := httptest.NewRecorder()
	c := authedContext(e, request, recorder, userID)

	err := handler.CashOut(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}
