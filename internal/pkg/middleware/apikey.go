package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/purplewallet/wallet-service/internal/pkg/models"
	"github.com/purplewallet/wallet-service/internal/utils"
)

const (
	// APIKeyHeader carries the caller's key on internal endpoints
	APIKeyHeader = "X-API-Key"
)

// APIKeyMiddleware validates API keys for service-to-service endpoints
type APIKeyMiddleware struct {
	config *models.APIKeyConfig
}

// NewAPIKeyMiddleware creates an API key middleware from configuration
func NewAPIKeyMiddleware(config *models.APIKeyConfig) *APIKeyMiddleware {
	return &APIKeyMiddleware{config: config}
}

// Validate returns a middleware that accepts only the named callers
func (m *APIKeyMiddleware) Validate(allowedCallers ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.UnauthorizedResponse(c, "API key is required")
			}

			valid := false
			for _, caller := range allowedCallers {
				expected, exists := m.config.Keys[caller]
				if !exists || expected == "" {
					continue
				}
				if subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					valid = true
					c.Set("api_caller", caller)
					break
				}
			}

			if !valid {
				return utils.UnauthorizedResponse(c, "Invalid API key")
			}

			return next(c)
		}
	}
}
