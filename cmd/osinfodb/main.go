// osinfodb identifies installation media and trees against an OS catalog
// and queries the catalog's collections
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nainya/osinfodb/internal/config"
	"github.com/nainya/osinfodb/internal/logger"
	"github.com/nainya/osinfodb/internal/metrics"
	"github.com/nainya/osinfodb/pkg/catalog"
	"github.com/nainya/osinfodb/pkg/loader"
)

// app carries what every subcommand needs once the root command has run
type app struct {
	configPath   string
	catalogPaths []string

	cfg      *config.Config
	log      *logger.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "osinfodb",
		Short:        "Identify OS installation media and query the OS catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $HOME/.osinfodb/osinfodb.yaml)")
	rootCmd.PersistentFlags().StringSliceVar(&a.catalogPaths, "catalog", nil, "catalog files or directories (overrides catalog.paths)")

	rootCmd.AddCommand(
		detectCmd(a),
		queryCmd(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(a.catalogPaths) > 0 {
		cfg.Catalog.Paths = a.catalogPaths
	}
	a.cfg = cfg

	logger.InitGlobalLogger(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})
	a.log = logger.GetGlobalLogger()
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.NewMetrics(a.registry)
	return nil
}

// loadCatalog builds the catalog from the configured paths
func (a *app) loadCatalog(ctx context.Context, command string) (*catalog.Db, error) {
	log := a.log.WithFields(map[string]interface{}{"command": command})
	db := catalog.New(
		catalog.WithLogger(log),
		catalog.WithMetrics(a.metrics),
		catalog.WithRegexCacheTTL(a.cfg.Catalog.RegexCacheTTL),
	)
	l := loader.New(loader.WithLogger(log))
	if err := l.Load(ctx, db, a.cfg.Catalog.Paths...); err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return db, nil
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	start := time.Now()
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.Textfile, a.registry); err != nil {
		a.log.Error("metrics textfile not written").
			Str("path", a.cfg.Metrics.Textfile).
			Err(err).
			Send()
		return fmt.Errorf("writing metrics: %w", err)
	}
	a.log.Debug("wrote metrics textfile").
		Str("path", a.cfg.Metrics.Textfile).
		Dur("duration", time.Since(start)).
		Send()
	return nil
}
