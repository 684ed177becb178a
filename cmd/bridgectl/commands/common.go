package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"agent-bridge/internal/bridgeclient"
	"agent-bridge/internal/config"
	"agent-bridge/internal/relay"
)

// getClient resolves flags over the environment.
func getClient() (*bridgeclient.Client, error) {
	cfg, err := config.Load[config.Client]()
	if err != nil {
		return nil, err
	}
	url := cfg.BridgeURL
	if bridgeURL != "" {
		url = bridgeURL
	}
	to := cfg.BridgeTimeout
	if timeout > 0 {
		to = timeout
	}
	return bridgeclient.New(url, to), nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// printMessages renders messages as a table; content is cut to keep rows on one line.
func printMessages(w io.Writer, msgs []relay.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}
	table := newTable(w, "ID", "From", "To", "Timestamp", "Read", "Content")
	for _, m := range msgs {
		table.Append([]string{
			strconv.FormatInt(m.ID, 10),
			string(m.From),
			string(m.To),
			m.Timestamp,
			strconv.FormatBool(m.Read),
			truncate(m.Content, 60),
		})
	}
	table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
