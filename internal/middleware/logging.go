package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access log line per request. Query strings are
// left out since they carry credentials.
func RequestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		entry := log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
		return err
	}
}
