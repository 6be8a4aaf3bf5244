package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/gophcalendar/internal/logging"
	"github.com/dmitrijs2005/gophcalendar/internal/server"
	"github.com/dmitrijs2005/gophcalendar/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, cfg.IsProduction())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if z, ok := logger.(*logging.ZapLogger); ok {
		defer func() { _ = z.Sync() }()
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logging.LogError(ctx, logger, "app init failed", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logging.LogError(ctx, logger, "app stopped with error", err)
	}

}
