package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agent-bridge/internal/relay"
)

var (
	sendFrom string
	sendTo   string
)

var sendCmd = &cobra.Command{
	Use:   "send <content>",
	Short: "Send a message",
	Long:  `Send a message from one agent to the other. Remaining arguments are joined with spaces.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendFrom, "from", "",
		"Sending agent: claude or gpt (required)")
	sendCmd.Flags().StringVar(&sendTo, "to", "",
		"Recipient agent: claude or gpt (required)")

	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
}

func runSend(cmd *cobra.Command, args []string) error {
	from, err := relay.ParseAgent("sender", sendFrom)
	if err != nil {
		return err
	}
	to, err := relay.ParseAgent("recipient", sendTo)
	if err != nil {
		return err
	}

	client, err := getClient()
	if err != nil {
		return err
	}
	res, err := client.Send(cmd.Context(), from, to, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent message #%d from %s to %s at %s\n", res.MessageID, from, to, res.Timestamp)
	return nil
}
