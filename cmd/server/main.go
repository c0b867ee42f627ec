package main

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/klasique2/Bellak-voting/internal/config"
	"github.com/klasique2/Bellak-voting/internal/handler"
	"github.com/klasique2/Bellak-voting/internal/middleware"
	"github.com/klasique2/Bellak-voting/internal/router"
	"github.com/klasique2/Bellak-voting/internal/service"
	"github.com/klasique2/Bellak-voting/internal/upstream"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "bellak-voting")
	handler.InitMetrics()

	api := upstream.New(cfg.VotingAPIURL, cfg.UpstreamTimeout)
	api.SetObserver(handler.ObserveUpstream)

	catalog := service.NewCatalogService(api)

	app := fiber.New(fiber.Config{
		AppName:      "Bellak Voting Proxy",
		ServerHeader: "Bellak",
	})

	router.Setup(app, &router.Handlers{
		Vote:     handler.NewVoteHandler(api),
		Category: handler.NewCategoryHandler(api),
		Catalog:  handler.NewCatalogHandler(catalog),
		Health:   handler.NewHealthHandler(api),
	}, cfg.CORSOrigins)

	middleware.Logger.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Str("voting_api", cfg.VotingAPIURL).
		Msg("voting proxy starting")

	log.Fatal(app.Listen(":" + cfg.Port))
}
