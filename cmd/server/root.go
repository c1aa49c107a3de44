package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/oetprep/internal/config"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Running the root command alone
// starts the server.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "oetprep",
		Short:        "OET exam practice server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("storage-driver", "", "storage driver (memory, jsonfile, sqlite, postgres)")
	pf.String("data-dir", "", "directory for jsonfile collections or the sqlite database")
	pf.String("database-url", "", "postgres connection URL")
	root.Flags().Int("port", 0, "HTTP port")

	root.AddCommand(
		newServeCmd(),
		newImportVocabularyCmd(),
		newExportReportCmd(),
		newHashPasswordCmd(),
	)
	return root
}

// loadConfig loads configuration with the command's flags applied and
// installs the configured logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadWithFlags(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, log, nil
}
