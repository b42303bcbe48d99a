package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/apperrors"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse sends a success response with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error response
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   errorMessage,
		Code:    statusCode,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return ErrorResponseHandler(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return ErrorResponseHandler(c, http.StatusUnauthorized, errorMessage)
}

// ForbiddenResponse sends a 403 Forbidden response
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Forbidden"
	}
	return ErrorResponseHandler(c, http.StatusForbidden, errorMessage)
}

// NotFoundResponse sends a 404 Not Found response
func NotFoundResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Resource not found"
	}
	return ErrorResponseHandler(c, http.StatusNotFound, errorMessage)
}

// InternalServerErrorResponse sends a 500 Internal Server Error response
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return ErrorResponseHandler(c, http.StatusInternalServerError, errorMessage)
}

// ServiceUnavailableResponse sends a 503 Service Unavailable response
func ServiceUnavailableResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Service unavailable"
	}
	return ErrorResponseHandler(c, http.StatusServiceUnavailable, errorMessage)
}

// AppErrorResponse maps an application error to its HTTP status code and
// sends the standard error body. Signature failures get a generic body so
// callers cannot tell which verification step rejected them.
func AppErrorResponse(c echo.Context, err error) error {
	switch apperrors.CodeOf(err) {
	case apperrors.ValidationError:
		return ErrorResponseHandler(c, http.StatusBadRequest, err.Error())
	case apperrors.InsufficientFunds:
		return ErrorResponseHandler(c, http.StatusUnprocessableEntity, err.Error())
	case apperrors.InvalidState, apperrors.DuplicateRequest, apperrors.LockTimeout:
		return ErrorResponseHandler(c, http.StatusConflict, err.Error())
	case apperrors.Forbidden:
		return ErrorResponseHandler(c, http.StatusForbidden, err.Error())
	case apperrors.NotFound:
		return ErrorResponseHandler(c, http.StatusNotFound, err.Error())
	case apperrors.Expired:
		return ErrorResponseHandler(c, http.StatusGone, err.Error())
	case apperrors.InvalidSignature:
		return UnauthorizedResponse(c, "")
	default:
		return InternalServerErrorResponse(c, "")
	}
}
