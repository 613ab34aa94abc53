package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unitip-client/internal/config"
	"unitip-client/internal/devserver"
	"unitip-client/internal/observability"
)

func main() {
	cfg := config.Load()
	observability.InitLogger(cfg.LogLevel, cfg.LogFormat)

	slog.Info("starting unitip dev server", slog.String("port", cfg.Port))

	store := devserver.NewStore()
	if cfg.SeedData {
		if err := devserver.Seed(store); err != nil {
			slog.Error("failed to seed store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("seeded dev data",
			slog.String("customer", devserver.SeedCustomerEmail),
			slog.String("driver", devserver.SeedDriverEmail))
	}

	opts := devserver.Options{
		RequestsPerSecond: 50,
		Burst:             100,
	}
	if cfg.IsDevelopment() {
		if _, err := os.Stat(cfg.OpenAPISpecPath); err == nil {
			opts.OpenAPISpecPath = cfg.OpenAPISpecPath
		}
	}

	handler, err := devserver.New(store).Routes(opts)
	if err != nil {
		slog.Error("failed to build routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", slog.String("error", err.Error()))
	}
}
