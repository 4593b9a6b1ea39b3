// barkeep is a bar inventory tracker. Run with no arguments for the
// interactive TUI; subcommands cover scripted use (add, list, rm, import).
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"barkeep/cmd/barkeep/ui"
	"barkeep/internal/config"
	"barkeep/internal/logging"
	"barkeep/internal/store"
	"barkeep/internal/watch"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd *cobra.Command

func init() {
	rootCmd = &cobra.Command{
		Use:   "barkeep",
		Short: "barkeep - bar inventory tracking",
		Long: `barkeep tracks storage areas, locations and item counters for a bar.

Running without arguments opens the interactive interface. Lists stay sorted
by rank then name; CSV files dropped into the import directory are ingested
automatically while the interface is open.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if err := logging.Initialize(cfg.DataDir, logging.Settings{
				DebugMode:  cfg.Logging.DebugMode,
				Level:      cfg.Logging.Level,
				Categories: cfg.Logging.Categories,
			}); err != nil {
				return err
			}

			// The TUI owns the terminal; zap is for the scripted commands.
			if cmd == rootCmd {
				return nil
			}
			zc := zap.NewProductionConfig()
			if verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
			logging.Shutdown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func runTUI() error {
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher, err := watch.New(st, cfg.ImportDir)
	if err != nil {
		logging.Get(logging.CategoryWatch).Warn("watcher unavailable: %v", err)
		watcher = nil
	} else {
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	app := ui.NewApp(st, watcher, ui.ThemeByName(cfg.UI.Theme))
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(addCmd, listCmd, rmCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
