package middleware

import (
	"github.com/amirasaad/atm/pkg/trace"
	"github.com/gofiber/fiber/v2"
)

// HeaderRequestID carries the trace id of a request in and out.
const HeaderRequestID = "X-Request-ID"

// Trace attaches a trace id to the request context, reusing an incoming X-Request-ID.
func Trace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = trace.NewID()
		}
		c.SetUserContext(trace.WithID(c.UserContext(), id))
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
