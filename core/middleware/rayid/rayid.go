// Package rayid assigns every request a unique id.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderName is the response header (and accepted request header) carrying the id.
	HeaderName = "X-Ray-ID"
	// LocalsKey is the fiber locals key holding the id.
	LocalsKey = "ray_id"
)

// New returns the middleware. An incoming X-Ray-ID is kept so that callers can
// correlate retries; otherwise a random UUID is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

// Get returns the id of the current request.
func Get(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsKey).(string)
	return id
}
