package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"agent-bridge/internal/relay"
)

var clearCmd = &cobra.Command{
	Use:   "clear <agent>",
	Short: "Empty an agent's queue",
	Long:  `Empty an agent's pending queue. Message history is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	agent, err := relay.ParseAgent("agent", args[0])
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}
	res, err := client.Clear(cmd.Context(), agent)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d message(s) for %s\n", res.ClearedCount, agent)
	return nil
}
