package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmynk/memoryboard/internal/auth"
	"github.com/mmynk/memoryboard/internal/board"
	"github.com/mmynk/memoryboard/internal/config"
	"github.com/mmynk/memoryboard/internal/metrics"
	"github.com/mmynk/memoryboard/internal/storage"
	"github.com/mmynk/memoryboard/internal/storage/docstore"
	"github.com/mmynk/memoryboard/internal/storage/sqlite"
	"github.com/mmynk/memoryboard/pkg/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "memoryboard",
	Short: "Memory board server",
	Long: `Memory board: groups share posts, posts collect comments and likes,
groups earn badges.

Available subcommands:
  serve  - Run the Connect API server (default)
  seed   - Load the sample groups
  badges - Re-run badge evaluation
  sweep  - Remove posts and comments left without a parent`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (env overrides still apply)")

	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "Delete every existing group with its posts and comments first")
	badgesCmd.AddCommand(badgesReevaluateCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(sweepCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore opens the entity store selected by the storage driver.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.SQLitePath)
		return store, nil

	case config.DriverMongo:
		store, err := docstore.Connect(ctx, cfg.MongoURI, cfg.Database)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.Database)
		return store, nil

	case config.DriverLungo:
		var (
			store *docstore.Store
			err   error
		)
		if cfg.LungoFile == "" {
			store, err = docstore.OpenMemory(ctx, cfg.Database)
		} else {
			store, err = docstore.OpenFile(ctx, cfg.LungoFile, cfg.Database)
		}
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "file", cfg.LungoFile)
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// app bundles what every subcommand needs.
type app struct {
	cfg    *config.Config
	store  storage.Store
	gate   *auth.BcryptGate
	passes *auth.PassManager
	board  *board.Service
}

func newApp(ctx context.Context, m *metrics.Metrics) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	gate := auth.NewBcryptGate(cfg.Auth.BcryptCost)
	passes := auth.NewPassManager(cfg.Auth.PassSecret, cfg.GetPassTTL())

	opts := []board.Option{
		board.WithRules(cfg.BadgeRules()),
		board.WithPageSizes(cfg.Listing.DefaultPageSize, cfg.Listing.MaxPageSize),
	}
	if m != nil {
		opts = append(opts, board.WithMetrics(m))
	}

	return &app{
		cfg:    cfg,
		store:  store,
		gate:   gate,
		passes: passes,
		board:  board.New(store, gate, passes, opts...),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close storage", "error", err)
	}
}
