package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	platformcmd "github.com/louisbranch/roller/internal/platform/cmd"
	"github.com/louisbranch/roller/internal/platform/config"
	"github.com/louisbranch/roller/internal/platform/logging"
	"github.com/louisbranch/roller/internal/services/mcp/service"
)

// main serves the dice tools over MCP on stdio.
func main() {
	fs := pflag.NewFlagSet(platformcmd.ServiceMCP, pflag.ContinueOnError)
	cfg, err := service.ParseConfig(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		config.Exitf("logger: %v", err)
	}
	logger = logger.Named("mcp")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetryAndOptions(ctx, platformcmd.ServiceMCP, platformcmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return service.Run(ctx, cfg, logger)
	})
	if err != nil {
		logger.Error("failed to serve MCP", zap.Error(err))
		_ = logger.Sync()
		config.Exitf("failed to serve MCP: %v", err)
	}
}
