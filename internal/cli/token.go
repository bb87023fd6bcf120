package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/jobsync/internal/secrets"
)

var tokenValue string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Webflow API token stored in the OS keyring",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set <account>",
	Short: "Store the Webflow API token under an account name",
	Long: `Store the Webflow API token in the OS keyring. Point WEBFLOW_KEYRING_ACCOUNT
at the same account name to use it.

The token is read from --token or from the first line of stdin.

Examples:
  jobsync token set default --token "$WEBFLOW_API_TOKEN"
  echo "$TOKEN" | jobsync token set default`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenSet,
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete <account>",
	Short: "Remove a stored Webflow API token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.DeleteWebflowToken(args[0]); err != nil {
			return fmt.Errorf("delete token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Token removed for %q\n", args[0])
		return nil
	},
}

func init() {
	tokenSetCmd.Flags().StringVar(&tokenValue, "token", "", "token value (read from stdin when empty)")
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenDeleteCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	token := tokenValue
	if token == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read token: %w", err)
		}
		token = strings.TrimSpace(line)
	}

	if err := secrets.SetWebflowToken(args[0], token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Token stored for %q\n", args[0])
	return nil
}
