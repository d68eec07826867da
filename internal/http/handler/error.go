package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/http/middleware"
	"realtyapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "REPORT_FAILED")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service sentinel errors onto the error envelope.
// Anything unrecognized is reported as an internal error.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "listing not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrTitleRequired):
		return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
	case errors.Is(err, service.ErrRealtorNotFound):
		return writeError(c, fiber.StatusNotFound, "REALTOR_NOT_FOUND", "realtor not found")
	case errors.Is(err, service.ErrRealtorRequired):
		return writeError(c, fiber.StatusBadRequest, "REALTOR_REQUIRED", "realtor_id is required")
	case errors.Is(err, service.ErrInvalidInquiry):
		// messages are built from fixed strings in the service package
		return writeError(c, fiber.StatusBadRequest, "INVALID_INQUIRY", err.Error())
	case errors.Is(err, service.ErrInvalidRealtor):
		return writeError(c, fiber.StatusBadRequest, "INVALID_REALTOR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
