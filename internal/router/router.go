package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/klasique2/Bellak-voting/internal/handler"
	"github.com/klasique2/Bellak-voting/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Vote     *handler.VoteHandler
	Category *handler.CategoryHandler
	Catalog  *handler.CatalogHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	// Lookup proxies (query-parameter contract kept for the storefront client)
	api.Get("/get-category-by-id", h.Category.GetByID)
	api.Get("/get-nominees-by-category", h.Category.NomineesByCategory)

	// Vote pipeline
	api.Post("/vote/initiate", h.Vote.Initiate)
	api.Post("/vote/verify", h.Vote.Verify)

	// Typed catalog reads
	api.Get("/categories", h.Catalog.ListCategories)
	api.Get("/categories/:id/results", h.Catalog.Results)
	api.Get("/categories/:id/full", h.Catalog.WithNominees)
	api.Get("/nominees", h.Catalog.AllNominees)
}
