package commands

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"agent-bridge/internal/relay"
	"agent-bridge/internal/storage"
)

var (
	transcriptAgent string
	transcriptLimit int
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <file>",
	Short: "Show messages recorded in a transcript file",
	Long: `Show messages recorded by the relay's transcript listener (TRANSCRIPT_PATH).

The file is read directly, so this works while the relay is down.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().StringVar(&transcriptAgent, "agent", "",
		"Only messages sent by or to this agent")
	transcriptCmd.Flags().IntVar(&transcriptLimit, "limit", 0,
		"Only the N most recent matching messages (default: all)")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	tr, err := storage.ReadTranscript(args[0])
	if err != nil {
		return err
	}

	if transcriptAgent != "" {
		agent, err := relay.ParseAgent("agent", transcriptAgent)
		if err != nil {
			return err
		}
		tr.Messages = lo.Filter(tr.Messages, func(m relay.Message, _ int) bool {
			return m.From == agent || m.To == agent
		})
	}
	if transcriptLimit > 0 && len(tr.Messages) > transcriptLimit {
		tr.Messages = tr.Messages[len(tr.Messages)-transcriptLimit:]
	}
	if tr.Skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: skipped %d unreadable line(s)\n", tr.Skipped)
	}

	if jsonOutput {
		return outputJSON(cmd, tr)
	}
	printMessages(cmd.OutOrStdout(), tr.Messages)
	return nil
}
