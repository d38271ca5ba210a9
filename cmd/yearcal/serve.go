package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/neexbeast/yearcal/internal/api"
	"github.com/neexbeast/yearcal/internal/calendar"
	"github.com/neexbeast/yearcal/internal/config"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar page and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(os.Stdout, true)
			if err != nil {
				return err
			}
			if err := run(cmd.Context(), cfg, log); err != nil {
				log.Error("server exited with error", "err", err)
				return err
			}
			return nil
		},
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	b, err := openBackends(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer b.close()

	var locator api.Locator
	if cfg.GeoDefaultCountry {
		locator = api.IPLocator{}
	}

	handlers := api.NewHandlers(
		calendar.NewService(b.fetcher),
		b.fetcher,
		locator,
		api.Defaults{
			CountryCode:  cfg.Defaults.Country,
			WeekStartsOn: strconv.Itoa(cfg.Defaults.WeekStartsOn),
		},
		log,
	)

	// Pingers stay nil interfaces for disabled backends so health reports them as such.
	opts := api.RouterOptions{Token: cfg.Auth.Token, RateLimit: cfg.Server.RateLimit}
	if b.pool != nil {
		opts.DB = &pgxPoolPinger{pool: b.pool}
		handlers.WithArchive(b.repo)
	}
	if b.redis != nil {
		opts.Redis = &redisPingerAdapter{client: b.redis}
	}

	router := api.NewRouter(handlers, opts, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", cfg.Server.Port,
			"redis", b.redis != nil, "database", b.pool != nil, "fallback", cfg.Holidays.Fallback)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}
