package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/utils"
	"github.com/livemap-service/internal/usecase"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"

	// ClientIDKey - ключ c.Locals с ID аутентифицированного клиента
	ClientIDKey = "client_id"
)

// extractToken returns the bearer token from the request, "" when absent.
func extractToken(c *fiber.Ctx) string {
	header := c.Get(authorizationHeader)
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], bearerPrefix) {
		return ""
	}
	return fields[1]
}

// RequireAuth rejects requests without a valid worker bearer token.
// Reads stay open; this guards writes and lease acquisition.
func RequireAuth(authUC *usecase.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, err := authUC.ValidateToken(token)
		if err != nil {
			return utils.SendError(c, err)
		}

		c.Locals(ClientIDKey, claims.ClientID)
		return c.Next()
	}
}

// OptionalAuth records the authenticated client when a valid token is
// present but lets anonymous requests through. Handlers that gate single
// query parameters on authentication check c.Locals themselves.
func OptionalAuth(authUC *usecase.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := extractToken(c); token != "" {
			if claims, err := authUC.ValidateToken(token); err == nil {
				c.Locals(ClientIDKey, claims.ClientID)
			}
		}
		return c.Next()
	}
}
