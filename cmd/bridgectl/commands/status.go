package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"agent-bridge/internal/relay"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show queue status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	st, err := client.Status(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, st)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bridge %s at %s, %d message(s) total\n", st.Status, st.Timestamp, st.TotalMessages)
	table := newTable(out, "Agent", "Pending", "Unread")
	for _, a := range relay.Agents() {
		q := st.Queues[a]
		table.Append([]string{string(a), strconv.Itoa(q.Pending), strconv.Itoa(q.Unread)})
	}
	table.Render()
	return nil
}
