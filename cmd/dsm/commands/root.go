package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/dsm/config"
)

const version = "0.1.0"

var (
	cfgPath   string
	logLevel  string
	telemetry bool

	cfg      config.Config
	logger   *slog.Logger
	shutdown shutdownFunc
)

// Execute runs the dsm command tree.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "dsm",
		Short:        "Design structure matrix toolkit",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				c.Log.Level = logLevel
			}
			if telemetry {
				c.Telemetry.Exporter = "stdout"
			}
			if err = c.Validate(); err != nil {
				return err
			}
			cfg = c
			logger = cfg.Logger(cmd.ErrOrStderr())
			slog.SetDefault(logger)

			shutdown = nil
			if cfg.Telemetry.Exporter == "stdout" {
				if shutdown, err = setupTelemetry(cmd.ErrOrStderr(), version); err != nil {
					return err
				}
			}

			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if shutdown == nil {
				return nil
			}

			return shutdown(context.Background())
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (YAML)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&telemetry, "telemetry", false, "export traces and metrics to stderr")

	root.AddCommand(validateCmd(), gridCmd(), propagateCmd(), clusterCmd(), sequenceCmd(), generateCmd())

	return root
}
