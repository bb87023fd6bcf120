package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobsync/internal/domain"
)

var syncVerbose bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror stored jobs into the Webflow collection and publish",
	Long: `Create a Webflow item for every stored job whose reference id is not yet
in the collection, then publish the site.

Examples:
  jobsync sync
  jobsync sync --verbose`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "print every job outcome")
}

func runSync(cmd *cobra.Command, args []string) error {
	res, err := resources.Syncer.SyncAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	printSyncResult(cmd.OutOrStdout(), res, syncVerbose)
	return nil
}

func printSyncResult(w io.Writer, res domain.SyncResult, verbose bool) {
	fmt.Fprintf(w, "Collection %s: %d existing, %d created, %d skipped, %d failed\n",
		res.CollectionID, res.Existing, res.Created, res.Skipped, res.Failed)
	if res.ExistingError != "" {
		fmt.Fprintf(w, "Warning: existing items unavailable: %s\n", res.ExistingError)
	}

	switch {
	case res.Published:
		fmt.Fprintln(w, "Site published.")
	case res.PublishError != "":
		fmt.Fprintf(w, "Publish failed: %s\n", res.PublishError)
	}

	if !verbose {
		return
	}
	for _, o := range res.Outcomes {
		line := fmt.Sprintf("  %-18s %-12s %s", o.State, o.ReferenceID, o.Title)
		if o.Error != "" {
			line += " : " + o.Error
		}
		fmt.Fprintln(w, line)
	}
}
