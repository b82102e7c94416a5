// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/themesmith/internal/app"
	"github.com/codr1/themesmith/internal/config"
	"github.com/codr1/themesmith/internal/ratelimit"
	"github.com/codr1/themesmith/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults to an in-memory store)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is done. Every resource it opens is released before
// it returns, including on startup errors.
func run(ctx context.Context, cfg *config.Config) error {
	services, err := app.Open(cfg)
	if err != nil {
		return fmt.Errorf("open theme services: %w", err)
	}
	defer func() {
		if err := services.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close theme services")
		}
	}()

	if err := scheduler.Init(); err != nil {
		return fmt.Errorf("initialize scheduler: %w", err)
	}
	svc, err := scheduler.ServiceInstance()
	if err != nil {
		return fmt.Errorf("load scheduler: %w", err)
	}
	if _, err := scheduler.RegisterBackupJob(svc, cfg.Backup, services.Store); err != nil {
		return fmt.Errorf("register backup job: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(&ratelimit.Config{
			MaxRequests: cfg.RateLimit.RequestsPerHour,
			Window:      time.Hour,
		})
		defer limiter.Close()
	}

	server := newServer(cfg, services, limiter)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
