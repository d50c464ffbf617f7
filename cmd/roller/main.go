// Package main evaluates a dice expression such as 3d4+2d8+6 and prints
// every die drawn followed by the total.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/pflag"

	platformcmd "github.com/louisbranch/roller/internal/platform/cmd"
	"github.com/louisbranch/roller/internal/platform/config"
	apperrors "github.com/louisbranch/roller/internal/platform/errors"
	"github.com/louisbranch/roller/internal/platform/logging"
	"github.com/louisbranch/roller/internal/tools/roller"
)

func main() {
	fs := pflag.NewFlagSet(platformcmd.ServiceRoller, pflag.ContinueOnError)
	cfg, err := roller.ParseConfig(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeInputMissing {
			fs.Usage()
		}
		config.Exitf("%s", apperrors.UserMessage(err, cfg.Locale))
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		config.Exitf("%s", apperrors.UserMessage(err, cfg.Locale))
	}
	defer func() { _ = logger.Sync() }()

	err = platformcmd.RunWithTelemetryAndOptions(context.Background(), platformcmd.ServiceRoller, platformcmd.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return roller.Run(ctx, cfg, os.Stdout, logger, nil)
	})
	if err != nil {
		_ = logger.Sync()
		config.Exitf("%s", apperrors.UserMessage(err, cfg.Locale))
	}
}
