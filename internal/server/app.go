// Package server wires configuration, logging, storage, services and the
// HTTP API into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/logging"
	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
	"github.com/dmitrijs2005/gophcalendar/internal/server/config"
	"github.com/dmitrijs2005/gophcalendar/internal/server/httpapi"
	"github.com/dmitrijs2005/gophcalendar/internal/server/observability"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcalendar/internal/server/services"
)

// closeTimeout bounds how long closing the store may take on shutdown.
const closeTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
	http    *httpapi.Server
}

// NewApp connects the configured store, prepares its schema and builds the
// services and HTTP server on top of it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	rm, err := repomanager.New(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close(ctx)
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	hasher := auth.NewBcryptHasher(c.BcryptCost)
	tokens := auth.NewTokenIssuer(c.SecretKey, c.TokenValidityDuration)

	as := services.NewAuthService(rm.Users(), hasher, tokens)
	es := services.NewEventService(rm.Events())
	ps := services.NewProfileService(rm.Users(), hasher)

	hs := httpapi.NewServer(c, logger, as, es, ps, rm, observability.NewMetrics())

	logger.Info(ctx, "Storage ready", "backend", rm.Backend())

	return &App{config: c, logger: logger, manager: rm, http: hs}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// stops the HTTP server and closes the store.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(ctx, cancelFunc)

	runErr := app.http.Run(ctx)
	if runErr != nil {
		logging.LogError(ctx, app.logger, "http server stopped with error", runErr)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.manager.Close(closeCtx); err != nil {
		logging.LogError(ctx, app.logger, "closing storage", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
