package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPObserver receives one observation per request.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics labels requests by their route pattern, not the raw path, so
// wallet addresses do not become label values.
func Metrics(observer HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "/" {
			route = r.Path
		}
		observer.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
