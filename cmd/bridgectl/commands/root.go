package commands

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	// bridgeURL overrides BRIDGE_URL.
	bridgeURL string

	// timeout overrides BRIDGE_TIMEOUT.
	timeout time.Duration

	// jsonOutput prints raw JSON instead of tables.
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "bridgectl",
	Short: "Inspect and drive a running agent bridge",
	Long: `bridgectl talks to the agent bridge over HTTP.

Use it to send messages on behalf of an agent, read or clear an agent's
queue, inspect queue status and message history, and read a transcript
file written by the relay.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&bridgeURL, "url", "",
		"Bridge base URL (default: $BRIDGE_URL or http://127.0.0.1:5555)",
	)
	rootCmd.PersistentFlags().DurationVar(
		&timeout, "timeout", 0,
		"HTTP timeout (default: $BRIDGE_TIMEOUT or 30s)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&jsonOutput, "json", false,
		"Print raw JSON responses",
	)

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(infoCmd)
}
