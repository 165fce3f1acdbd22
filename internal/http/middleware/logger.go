package middleware

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"mobilityapi/internal/logging"
)

// ErrorLocalKey holds the internal cause of a 5xx response. Handlers set it
// so the access log can record what the client body hides.
const ErrorLocalKey = "error_cause"

// Logger logs one entry per request with request_id, method, path, status
// and latency in milliseconds. 5xx responses log at error level with their
// cause, 4xx at warn.
func Logger(log *logrus.Entry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		e := log.WithFields(logrus.Fields{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})
		if cause, ok := c.Locals(ErrorLocalKey).(error); ok {
			e = e.WithError(cause)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			e.Error("request failed")
		case status >= fiber.StatusBadRequest:
			e.Warn("request rejected")
		default:
			e.Info("request")
		}
		return err
	}
}

// LoggerWithWriter is Logger on a JSON logger writing to w with timestamps in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	return Logger(logging.Component(logging.New(w, "info", loc), "http"))
}
