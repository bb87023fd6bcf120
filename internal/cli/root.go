// Package cli provides the command-line interface for jobsync.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/mcp"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

var (
	// Version is set at build time.
	Version = "0.2.0"

	cfg       config.Config
	logger    *logging.Logger
	resources *mcp.Resources
	cleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "jobsync",
	Short: "Fetch job postings and mirror them into a Webflow collection",
	Long: `jobsync fetches job postings from Adzuna into the local store and
mirrors every stored job into the Webflow "Jobs" collection.

Configuration comes from the environment (WEBFLOW_SITE_ID, WEBFLOW_API_TOKEN,
STORE_DRIVER, ...). The token can also live in the OS keyring, see "jobsync token".`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsResources(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger = logging.New(cfg.LogLevel)

		resources, cleanup, err = mcp.InitializeResources(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize resources: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// needsResources is false for commands that only touch the keyring or print help
func needsResources(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "token", "help", "version", "completion":
			return false
		}
	}
	return cmd.Runnable() && cmd != cmd.Root()
}

// Execute adds all child commands to the root command and runs it.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(tokenCmd)
}

