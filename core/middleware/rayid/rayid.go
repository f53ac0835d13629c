package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName carries the ray id back to the caller.
const HeaderName = "X-Ray-ID"

// New returns middleware that assigns every request a ray id. An incoming
// X-Ray-ID header is honored so ids survive proxy hops; otherwise a fresh
// uuid is generated. The id is stored in Locals("ray_id") for loggers.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
