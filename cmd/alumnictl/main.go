// Command alumnictl inspects the alumni statistics the API serves.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/business/alumni"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/config"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/logging"
	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type sourceOpener func(ctx context.Context, cfg config.Config, logger *zap.Logger) (alumni.Source, func() error, error)

// app carries what every subcommand needs once the root has initialised.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	open   sourceOpener
	ready  bool
}

func main() {
	root := newRootCommand(&app{open: source.Open})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "alumnictl",
		Short: "Inspect alumni statistics trees from the configured source",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.ready {
				return nil
			}
			_ = godotenv.Load(".env.local", ".env")
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config load: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("logger init: %w", err)
			}
			a.cfg, a.logger, a.ready = cfg, logger, true
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	cmd.AddCommand(
		newTreeCmd(a),
		newExploreCmd(a),
		newCheckSourceCmd(a),
	)
	return cmd
}

// service opens the configured source and wraps it in an alumni.Service.
func (a *app) service(ctx context.Context) (*alumni.Service, func() error, error) {
	src, closeFn, err := a.open(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s source: %w", a.cfg.StatsSource, err)
	}
	return alumni.NewService(src, a.logger.Named("alumni")), closeFn, nil
}

var treeKinds = []string{"org", "geo"}
