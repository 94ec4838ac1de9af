// Package main is the entry point for noisewalk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/noisewalk/internal/config"
	"github.com/samdwyer/noisewalk/internal/game"
	"github.com/samdwyer/noisewalk/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "noisewalk:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win over it.
	cfg, err := config.Load(os.LookupEnv, ".env")
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		logger.Warn("telemetry setup failed, running without tracing", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Error("telemetry shutdown", "err", err)
			}
		}()
	}

	logger.Info("starting",
		"session", telemetry.SessionID,
		"seed", cfg.Seed,
		"grid", cfg.GridSize,
		"backend", cfg.NoiseBackend,
	)

	g, err := game.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

// newLogger opens the log file named in cfg. The terminal belongs to the
// game screen, so logs never go to stdout.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if cfg.LogFile != "" && cfg.LogFile != "-" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "noisewalk",
		Level:           level,
	})
	return logger, closeFn, nil
}

// setupOTelEnv points the OTLP exporter at Honeycomb when an API key is set.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_NOISEWALK_API_KEY")
	if apiKey == "" {
		return
	}

	dataset := os.Getenv("HONEYCOMB_NOISEWALK_DATASET")
	if dataset == "" {
		dataset = "noisewalk" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
