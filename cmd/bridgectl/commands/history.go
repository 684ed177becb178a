package commands

import (
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent messages across both agents",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0,
		"Number of most recent messages (default: server default of 100)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	hist, err := client.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, hist)
	}
	printMessages(cmd.OutOrStdout(), hist.Messages)
	return nil
}
