package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorResponse(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "validation error maps to 400",
			err:            apperrors.New(apperrors.ValidationError, "amount must be positive"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "insufficient funds maps to 422",
			err:            apperrors.ErrInsufficientFunds,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid state maps to 409",
			err:            apperrors.New(apperrors.InvalidState, "transaction is not pending"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "duplicate request maps to 409",
			err:            apperrors.ErrDuplicateRequest,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "lock timeout maps to 409",
			err:            apperrors.ErrLockTimeout,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "forbidden maps to 403",
			err:            apperrors.New(apperrors.Forbidden, "only the recipient can accept"),
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "not found maps to 404",
			err:            apperrors.ErrWalletNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "expired maps to 410",
			err:            apperrors.ErrExpired,
			expectedStatus: http.StatusGone,
		},
		{
			name:           "invalid signature maps to 401",
			err:            apperrors.ErrInvalidSignature,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown error maps to 500",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := AppErrorResponse(c, tt.err)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response ErrorResponse
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
		})
	}
}

func TestAppErrorResponse_SignatureFailureIsGeneric(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/internal/webhooks/paysend", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := AppErrorResponse(c, apperrors.ErrInvalidSignature)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var response ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Unauthorized", response.Error)
	assert.NotContains(t, response.Error, "signature")
}
