package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/periodica/internal/config"
	"github.com/abhisek/periodica/internal/store"
)

var (
	// cfg is the merged configuration, loaded before any command runs.
	cfg config.Config

	logger    = slog.New(slog.DiscardHandler)
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "periodica",
	Short: "Chemistry escape room for the terminal",
	Long: "Periodica is a chemistry escape room: eight rooms, eight elements, one countdown per room.\n" +
		"Buy clues, name the element, and keep as many of your 100 points as you can.",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default $XDG_CONFIG_HOME/periodica/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "Write debug logs to this file (overrides PERIODICA_LOG_FILE)")
	rootCmd.PersistentFlags().String("journal", "", "Path to the SQLite event journal (overrides PERIODICA_JOURNAL)")
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(cluesCmd)
	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup loads the configuration, applies the persistent flags and opens
// the log file.
func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if p, _ := cmd.Flags().GetString("journal"); p != "" {
		cfg.Journal = p
	}

	if cfg.LogFile == "" {
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logCloser = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("periodica starting", "version", version, "command", cmd.Name())
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	logger = slog.New(slog.DiscardHandler)
	return err
}

// resolveDBPath returns the journal path: --journal or the config first,
// then PERIODICA_JOURNAL, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.Journal != "" {
		return cfg.Journal, store.EnsureDir(cfg.Journal)
	}
	return store.DefaultDBPath()
}

// openStore opens the on-disk journal for the inspection commands.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
