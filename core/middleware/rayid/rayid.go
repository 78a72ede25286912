// Package rayid assigns a request id to every request.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName carries the ray id in requests and responses.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the fiber locals key holding the ray id.
	LocalsKey = "ray_id"
)

// New returns the middleware. An incoming X-Ray-ID header is reused.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

// Get returns the ray id of the request, or "" when none is set.
func Get(c *fiber.Ctx) string {
	rid, _ := c.Locals(LocalsKey).(string)
	return rid
}
