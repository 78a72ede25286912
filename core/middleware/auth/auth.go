// Package auth implements API key authentication for Fiber.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderName is the request header carrying the API key.
const HeaderName = "X-API-Key"

// Config configures the middleware.
type Config struct {
	// ApiKey is the expected key. Empty disables authentication.
	ApiKey string
	// Next skips the middleware when it returns true.
	Next func(c *fiber.Ctx) bool
}

// New returns a middleware rejecting requests without a matching key.
func New(cfg Config) fiber.Handler {
	expected := []byte(cfg.ApiKey)

	return func(c *fiber.Ctx) error {
		if len(expected) == 0 || (cfg.Next != nil && cfg.Next(c)) {
			return c.Next()
		}

		key := c.Get(HeaderName)
		if key == "" {
			key = c.Query("api_key")
		}
		if subtle.ConstantTimeCompare([]byte(key), expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}
}
