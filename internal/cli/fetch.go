package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobsync/internal/domain"
)

var (
	fetchQuery    string
	fetchLocation string
	fetchRemote   bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch postings from Adzuna into the store",
	Long: `Fetch postings from Adzuna, normalize them, and upsert them into the store.

Defaults come from ADZUNA_QUERY and ADZUNA_LOCATION.

Examples:
  jobsync fetch
  jobsync fetch --query "golang" --location "Lyon"
  jobsync fetch --remote`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchQuery, "query", "q", "", "search keywords (default ADZUNA_QUERY)")
	fetchCmd.Flags().StringVarP(&fetchLocation, "location", "l", "", "location filter (default ADZUNA_LOCATION)")
	fetchCmd.Flags().BoolVar(&fetchRemote, "remote", false, "only remote postings")
}

func runFetch(cmd *cobra.Command, args []string) error {
	query := fetchQuery
	if query == "" {
		query = cfg.Adzuna.Query
	}
	location := fetchLocation
	if location == "" {
		location = cfg.Adzuna.Location
	}

	filters := domain.JobSearchFilters{Location: location}
	if cmd.Flags().Changed("remote") {
		filters.Remote = &fetchRemote
	}

	res, err := resources.JobService.Fetch(cmd.Context(), query, filters)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stored %d job(s) from %d source(s)\n", res.Stored, res.SourceCount)
	for _, j := range res.Jobs {
		fmt.Fprintf(out, "  %-12s %s (%s)\n", j.OfferID, j.Title, j.Company)
	}
	return nil
}
