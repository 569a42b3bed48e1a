package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ZRunner/Axobot-API-V2/app"
	"github.com/ZRunner/Axobot-API-V2/config"
	"github.com/ZRunner/Axobot-API-V2/internal/observability"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs, shutdownTracing, err := observability.Init(cfg.Observability.Environment)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	if cfg.Observability.MetricsAddress != "" {
		go serveMetrics(obs, cfg.Observability.MetricsAddress)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run(ctx)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-interrupt:
		obs.Logger.Info("Shutdown signal received")
		cancel()
		if err := <-errCh; err != nil {
			obs.Logger.Error("Server stopped with error", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			obs.Logger.Error("Server stopped with error", "error", err)
		}
	}

	if err := application.Close(); err != nil {
		obs.Logger.Error("Error during shutdown", "error", err)
	}

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := shutdownTracing(flushCtx); err != nil {
		obs.Logger.Error("Failed to flush traces", "error", err)
	}

	obs.Logger.Info("Application shut down gracefully")
}

func serveMetrics(obs *observability.Observability, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))

	obs.Logger.Info("Metrics server listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		obs.Logger.Error("Metrics server failed", "error", err)
	}
}
