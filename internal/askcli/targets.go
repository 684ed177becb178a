package askcli

import "agent-bridge/internal/config"

const (
	gptSystemPrompt = `You are a helpful AI assistant (GPT-4) participating in a collaborative
multi-agent workflow. You are communicating with Claude through an agent bridge.
Be concise, specific, and actionable in your responses. Focus on completing the
task at hand effectively.`

	claudeSystemPrompt = `You are Claude, a helpful AI assistant participating in a collaborative
multi-agent workflow. You are communicating with GPT-4 through an agent bridge.
Be concise, specific, and actionable in your responses. Focus on completing the
task at hand effectively.`
)

// GPT is the target used by claude-to-gpt.
func GPT(cfg *config.LLM) Target {
	return Target{
		Use:   "claude-to-gpt",
		Short: "Send a prompt to GPT-4 from Claude",
		Example: `  claude-to-gpt "Test the game and report any bugs"
  claude-to-gpt --file prompt.txt
  claude-to-gpt "Review this code" --system "You are a code reviewer"`,
		Label:        "GPT-4",
		Provider:     cfg.GPTProvider,
		Model:        cfg.GPTModel,
		SystemPrompt: gptSystemPrompt,
	}
}

// Claude is the target used by gpt-to-claude.
func Claude(cfg *config.LLM) Target {
	return Target{
		Use:   "gpt-to-claude",
		Short: "Send a prompt to Claude from GPT",
		Example: `  gpt-to-claude "I found these bugs: ..."
  gpt-to-claude --file report.txt
  gpt-to-claude "Fix this code" --system "You are a code fixer"`,
		Label:        "CLAUDE",
		Provider:     config.ProviderAnthropic,
		Model:        cfg.ClaudeModel,
		SystemPrompt: claudeSystemPrompt,
	}
}
