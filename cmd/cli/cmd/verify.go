package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify the configured TMDB API key",
	Long: `Verifies the TMDB API key configured via Viper (config file
or STREAILER_TMDB_APIKEY environment variable) by making a test API call.

Without a key the addon still runs but every stream request returns no streams.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := NewClientFunc(clientConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize client: %w", err)
		}
		if !client.Available() {
			return fmt.Errorf("TMDB API key not configured. Set via key '%s' or env %s_TMDB_APIKEY", CfgKeyTMDBAPIKey, envPrefix)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Verifying TMDB API key...")

		if err := client.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("API key verification failed: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "API key verified successfully.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
}
