package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/swidge-xyz/rango-wrapper/internal/app"
	"github.com/swidge-xyz/rango-wrapper/internal/config"
	"github.com/swidge-xyz/rango-wrapper/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("tracker starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker, err := app.NewTracker(ctx, cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize tracker", "error", err)
		return err
	}

	if err := tracker.Run(ctx); err != nil {
		return fmt.Errorf("tracker run: %w", err)
	}

	return nil
}
