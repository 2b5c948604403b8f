package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/halvorboe/concurrentstack/internal/logging"
	"github.com/halvorboe/concurrentstack/internal/server"
)

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("STACKD", &cfg); err != nil {
		log.Fatalln("failed to process config:", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		log.Fatalln("invalid config:", err)
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "stackd",
	})
	if err != nil {
		log.Fatalln("failed to create logger:", err)
	}

	// Metrics server
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics server listening")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	srv, err := server.New(server.Config{
		Addr:            cfg.ListenAddr,
		Capacity:        cfg.StackCapacity,
		MaxPayloadBytes: cfg.MaxPayloadBytes,
		RequestTimeout:  cfg.RequestTimeout,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create server")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}
}
