package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"agent-bridge/internal/relay"
)

var inboxClear bool

var inboxCmd = &cobra.Command{
	Use:   "inbox <agent>",
	Short: "Read an agent's pending messages",
	Long:  `Read an agent's pending messages. Reading marks them read; --clear also empties the queue.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInbox,
}

func init() {
	inboxCmd.Flags().BoolVar(&inboxClear, "clear", false,
		"Empty the queue after reading")
}

func runInbox(cmd *cobra.Command, args []string) error {
	agent, err := relay.ParseAgent("agent", args[0])
	if err != nil {
		return err
	}
	client, err := getClient()
	if err != nil {
		return err
	}
	inbox, err := client.Messages(cmd.Context(), agent, inboxClear)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, inbox)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d message(s) for %s\n", inbox.Count, agent)
	printMessages(cmd.OutOrStdout(), inbox.Messages)
	return nil
}
