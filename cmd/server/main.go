package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/amirasaad/brokerage/docs"
	"github.com/amirasaad/brokerage/infra/initializer"
	"github.com/amirasaad/brokerage/infra/scheduler"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/webapi"
	log "github.com/charmbracelet/log"
)

const shutdownTimeout = 10 * time.Second

// @title Brokerage API
// @version 1.0.0
// @description Binary trade settlement and review ledger
// @contact.name API Support
// @license.name MIT
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
//
// @securityDefinitions.apikey ApiKey
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Logger.Error("failed to release dependencies", "error", err)
		}
	}()
	logger := deps.Logger

	a, err := app.New(deps, cfg)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	fiberApp := webapi.SetupApp(a)

	sweeper := startSweeper(a, cfg)
	if sweeper != nil {
		defer sweeper.Stop()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)

	errCh := make(chan error, 1)
	go func() { errCh <- fiberApp.Listen(addr) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}
	if err := fiberApp.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// startSweeper schedules the expired-trade sweep. A bad schedule is logged
// and the server keeps running without it.
func startSweeper(a *app.App, cfg *config.App) *scheduler.SweepScheduler {
	if cfg.Trading == nil || !cfg.Trading.SweepEnabled {
		return nil
	}
	s := scheduler.NewSweepScheduler(a.TradeService, cfg.Trading.SweepSchedule, a.Deps.Logger)
	if err := s.Start(); err != nil {
		a.Deps.Logger.Error("sweep scheduler not started", "error", err, "schedule", cfg.Trading.SweepSchedule)
		return nil
	}
	return s
}
