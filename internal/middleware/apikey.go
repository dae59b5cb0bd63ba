// Package middleware provides HTTP middleware components for the application.
// It covers credential extraction, access logging and request metrics for
// the fiber web framework.
package middleware

import (
	"strings"

	apperrors "btcwallet/internal/errors"
	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

const (
	apiKeyLocal   = "api_key"
	adminKeyLocal = "admin_key"
)

// RequireAPIKey takes the caller's key from the api_key query parameter or
// the X-API-Key header and rejects requests that carry neither. The key is
// only checked for presence; services decide whether it is known.
func RequireAPIKey() fiber.Handler {
	return requireKey("api_key", "X-API-Key", apiKeyLocal)
}

// RequireAdminKey is RequireAPIKey for the admin_key parameter.
func RequireAdminKey() fiber.Handler {
	return requireKey("admin_key", "X-Admin-Key", adminKeyLocal)
}

func requireKey(param, header, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Query(param))
		if key == "" {
			key = strings.TrimSpace(c.Get(header))
		}
		if key == "" {
			return utils.Error(c, fiber.StatusBadRequest, apperrors.ErrInvalidRequest.Code, param+" is required")
		}
		// fiber reuses the request buffer the key points into
		c.Locals(local, fiberutils.CopyString(key))
		return c.Next()
	}
}

// APIKey returns the key stored by RequireAPIKey.
func APIKey(c *fiber.Ctx) string {
	key, _ := c.Locals(apiKeyLocal).(string)
	return key
}

// AdminKey returns the key stored by RequireAdminKey.
func AdminKey(c *fiber.Ctx) string {
	key, _ := c.Locals(adminKeyLocal).(string)
	return key
}
