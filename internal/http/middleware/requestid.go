package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"realtyapi/internal/logger"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request ID.
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 64
)

// RequestID tags every request with an ID and returns it in X-Request-ID.
// A client-supplied ID is reused only when it is at most 64 characters of
// [A-Za-z0-9._-]; anything else is replaced by a fresh UUID before it reaches
// logs or error bodies. The ID is also put on the user context so service
// logs can be correlated through logger.FromContext.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

// RequestIDFrom returns the ID assigned by RequestID, or "" when it did not run.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch b := id[i]; {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		case b == '.', b == '_', b == '-':
		default:
			return false
		}
	}
	return true
}
