package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archiwum/internal/config"
	"archiwum/internal/logging"
	"archiwum/internal/paths"
	"archiwum/internal/store"
)

var (
	// Global flags
	verbose    bool
	configPath string
	archiveDir string

	// Resolved in PersistentPreRunE
	cfg     *config.Config
	baseDir string
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "archiwum",
	Short: "Archiwum Z - repair contract archive",
	Long: `Archiwum Z keeps the repair contracts of a workshop as TOML files,
one file per contract, in a directory next to the executable.

Run without arguments to start the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("done", zap.String("command", cmd.CommandPath()))
		_ = logging.Sync()
	},
	RunE: runInteractive,
}

// setup resolves the base directory, loads configuration and starts
// logging. The base directory must be usable or nothing else can work.
func setup(cmd *cobra.Command, args []string) error {
	base, err := paths.BaseDir()
	if err != nil {
		return fmt.Errorf("resolving base directory: %w", err)
	}
	baseDir = base

	path := configPath
	if path == "" {
		path = paths.ConfigFile(base)
	}
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if archiveDir != "" {
		cfg.Archive.Dir = archiveDir
	}
	if verbose {
		cfg.Logging.DebugMode = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	if err := logging.Initialize(paths.LogsDir(base), cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logging.Get(logging.CategoryBoot)
	logger.Info("starting",
		zap.String("command", cmd.CommandPath()),
		zap.String("base", base),
		zap.String("config", path))
	return nil
}

// openDatabase opens the configured archive directory.
func openDatabase() (*store.Database, error) {
	dir, err := cfg.ArchiveDir(baseDir)
	if err != nil {
		return nil, err
	}
	return store.New(dir,
		store.WithConcurrency(cfg.Archive.Concurrency),
		store.WithLogger(logging.Get(logging.CategoryStore)))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <base>/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&archiveDir, "archive", "a", "", "Archive directory (overrides archive.dir)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
