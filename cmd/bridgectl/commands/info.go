package commands

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the relay's name, version and endpoints",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}
	info, err := client.Info(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd, info)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s v%s\n", info.Name, info.Version)
	routes := lo.Keys(info.Endpoints)
	sort.Strings(routes)
	table := newTable(out, "Endpoint", "Description")
	for _, route := range routes {
		table.Append([]string{route, info.Endpoints[route]})
	}
	table.Render()
	return nil
}
