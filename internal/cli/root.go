package cli

import (
	"fmt"

	"github.com/jakoblorz/go-panelcart/internal/config"
	"github.com/jakoblorz/go-panelcart/internal/filesystem"
	"github.com/jakoblorz/go-panelcart/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, cfg *config.Config, logger *zap.Logger) *cobra.Command {
	s := newSession(fs, cfg, logger)

	rootCmd := &cobra.Command{
		Use:   "panelcart",
		Short: "Configure wall panels and manage project carts",
		Long: `A CLI tool for configuring wall switch panels.

Panels are designed slot by slot, collected into a cart and grouped into
projects. The cart is stored between runs in the data directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `panelcart list` when no subcommand is provided.
			return (&ListCommand{s: s, format: formatText}).Run(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir,
		"Directory holding the cart (env PANELCART_DATA_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend,
		"Storage backend: file, bolt, sqlite, or memory (env PANELCART_BACKEND)")

	// Add subcommands
	rootCmd.AddCommand(NewListCommand(s))
	rootCmd.AddCommand(NewAddCommand(s))
	rootCmd.AddCommand(NewQuantityCommand(s))
	rootCmd.AddCommand(NewRemoveCommand(s))
	rootCmd.AddCommand(NewReorderCommand(s))
	rootCmd.AddCommand(NewEditCommand(s))
	rootCmd.AddCommand(NewProjectCommand(s))
	rootCmd.AddCommand(NewReportCommand(s))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	rootCmd := NewRootCommand(filesystem.NewOSFileSystem(), cfg, logger)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
