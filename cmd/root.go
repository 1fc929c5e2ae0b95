package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/config"
	"github.com/abhisek/thoughtchain/internal/logging"
	"github.com/abhisek/thoughtchain/internal/store"
)

var (
	cfg    *config.Config
	logger = logging.Logger()
)

var rootCmd = &cobra.Command{
	Use:   "thoughtchain",
	Short: "Chain-of-thought reasoning explorer",
	Long: "thoughtchain asks an LLM to reason step by step, splits the answer into\n" +
		"typed steps and lets you browse, compare and export them.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return err
		}

		level := c.Log.Level
		if cmd.Flags().Changed("log-level") {
			level, _ = cmd.Flags().GetString("log-level")
		}
		l, err := logging.Setup(level, os.Stderr)
		if err != nil {
			return err
		}

		cfg, logger = c, l
		if c.File != "" {
			logger.Debug("loaded config", "file", c.File)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplorer(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides store.path)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/thoughtchain/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(segmentCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from config, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path, store.EnsureDir(cfg.Store.Path)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("opened store", "path", dbPath)
	return s, nil
}

// componentLogger tags records from one command.
func componentLogger(name string) *slog.Logger {
	return logger.With("component", name)
}
