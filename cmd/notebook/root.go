// ABOUTME: Root command wiring configuration, logging, storage, and the page store.
// ABOUTME: Subcommands share the store opened in the persistent pre-run.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/harper/notebook/internal/calendar"
	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/logging"
	"github.com/harper/notebook/internal/notebook"
	"github.com/harper/notebook/internal/storage"
	"github.com/harper/notebook/internal/ui"
	"github.com/harper/notebook/internal/undo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// skipStore marks commands that run without opening storage.
const skipStore = "skip-store"

var (
	cfg       *config.Config
	logger    zerolog.Logger
	gateway   *storage.Gateway
	store     *notebook.Store
	weekStart time.Weekday
)

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Block-based notebook with pages, todos, and calendars",
	Long: `A personal notebook made of pages. Each page holds ordered blocks:
free text, todo items, and calendars with a note per day.

Pages are stored locally (badger or sqlite) or synced through Charm.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = "debug"
		}
		logger = logging.New().To(os.Stderr).Level(level).Console(true).Make()

		weekStart, err = calendar.ParseWeekStart(cfg.WeekStart)
		if err != nil {
			return err
		}

		if cmd.Annotations[skipStore] == "true" {
			return nil
		}
		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if gateway == nil {
			return nil
		}
		err := gateway.Close()
		gateway = nil
		return err
	},
}

func openStore(ctx context.Context) error {
	gw, err := storage.Open(storage.Options{
		Kind:          cfg.Backend,
		DataDir:       cfg.DataDir,
		Codec:         cfg.Codec,
		Key:           cfg.StorageKey,
		CharmDB:       cfg.Charm.DB,
		CharmHost:     cfg.Charm.Host,
		CharmAutoSync: cfg.Charm.AutoSync,
		CharmStale:    cfg.Charm.StaleThreshold,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	gateway = gw

	coord := undo.NewCoordinator(undo.WithWindow(cfg.UndoWindow))
	store = notebook.Open(ctx, gw, notebook.WithLogger(logger), notebook.WithCoordinator(coord))
	if err := store.Degraded(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("storage degraded, starting empty: %v", err)))
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/notebook/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
}
