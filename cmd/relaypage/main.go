package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hanpama/relaypage/internal/config"
	"github.com/hanpama/relaypage/internal/eventbus"
	"github.com/hanpama/relaypage/internal/logging"
	"github.com/hanpama/relaypage/internal/otel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "relaypage",
		Short:        "Relay-style cursor pagination tools",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "config file (YAML); RELAYPAGE_* environment variables override it")

	root.AddCommand(
		newPageCmd(),
		newCursorCmd(),
		newSchemaCmd(),
	)
	return root
}

// env is the per-invocation runtime: configuration, logger and telemetry.
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	close  func()
}

func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	eventbus.Use(eventbus.New())
	logger := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
	unsubscribe := logging.Subscribe(logger)

	shutdown, err := otel.Setup(cfg.Otel.Endpoint, cfg.Otel.Service)
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		close: func() {
			if err := shutdown(context.Background()); err != nil {
				logger.WithError(err).Warn("tracing shutdown failed")
			}
			unsubscribe()
			eventbus.Use(nil)
		},
	}, nil
}
