package handlers

import (
	"context"
	"time"

	"btcwallet/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker probes one dependency.
type HealthChecker func(ctx context.Context) error

type HealthHandler struct {
	checks  map[string]HealthChecker
	timeout time.Duration
}

func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{
		checks:  checks,
		timeout: 2 * time.Second,
	}
}

// HealthCheck reports every dependency and answers 503 if any is down.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			services[name] = err.Error()
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return utils.Respond(c, code, fiber.Map{
		"status":   status,
		"services": services,
	})
}
