package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/upstream"
)

// HealthHandler serves liveness and readiness probes. The only dependency of
// this service is the external voting API, so readiness is an upstream probe.
type HealthHandler struct {
	api     *upstream.Client
	startAt time.Time
}

func NewHealthHandler(api *upstream.Client) *HealthHandler {
	return &HealthHandler{
		api:     api,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with an upstream check.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	overallStatus := "healthy"
	check := checkUpstream(ctx, h.api)
	if check["status"] != "up" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         fiber.Map{"voting_api": check},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func checkUpstream(ctx context.Context, api *upstream.Client) fiber.Map {
	start := time.Now()
	resp, err := api.Get(ctx, upstream.CategoriesPath)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	if !resp.OK() {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      resp.StatusText,
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
