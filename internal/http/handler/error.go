package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mobilityapi/internal/http/middleware"
	"mobilityapi/internal/merge"
	"mobilityapi/internal/model"
	"mobilityapi/internal/report"
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

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type errorKind struct {
	err     error
	status  int
	code    string
	message string
}

// Order matters: the first kind matched by errors.Is wins.
var errorKinds = []errorKind{
	{model.ErrTemplateNotFound, fiber.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found"},
	{model.ErrDocumentNotFound, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"},
	{model.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "record not found"},
	{model.ErrNotModified, fiber.StatusConflict, "NOT_MODIFIED", "record not modified"},
	{model.ErrNotDeleted, fiber.StatusConflict, "NOT_DELETED", "record not deleted"},
	{model.ErrInvalidFileType, fiber.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "invalid file type"},
	{model.ErrInvalidInterval, fiber.StatusBadRequest, "INVALID_INTERVAL", "initial date is after final date"},
	{model.ErrInvalidSlot, fiber.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type"},
	{report.ErrInvalidDimension, fiber.StatusBadRequest, "INVALID_DIMENSION", "invalid report dimension"},
	{report.ErrInvalidFormat, fiber.StatusBadRequest, "INVALID_FORMAT", "invalid report format"},
	{merge.ErrInvalidTemplate, fiber.StatusUnprocessableEntity, "INVALID_TEMPLATE", "stored template is not a valid document"},
}

// writeServiceError maps domain errors to their status and code. Anything
// else is an internal error; its cause is kept for the request log.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return writeError(c, k.status, k.code, k.message)
		}
	}
	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
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
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			c.Locals(middleware.ErrorLocalKey, err)
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
