// Package askcli is the shared driver behind the one-shot prompt forwarders.
// It reads a prompt, sends it to the other side's model and prints the reply.
package askcli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"agent-bridge/internal/config"
	"agent-bridge/internal/llm"
)

const (
	ruleWidth     = 60
	previewLength = 200
)

// ErrReported means the failure was already printed for the user.
var ErrReported = errors.New("error already reported")

// Target is the model on the far side of the bridge.
type Target struct {
	Use          string
	Short        string
	Example      string
	Label        string
	Provider     config.LLMProvider
	Model        string
	SystemPrompt string
}

type ClientFactory interface {
	CreateClient(provider config.LLMProvider, model string) (llm.Client, error)
	Credential(provider config.LLMProvider) (env, value string)
}

type Deps struct {
	Factory  ClientFactory
	Out      io.Writer
	ReadFile func(name string) ([]byte, error)

	// Color enables the styled banner.
	Color bool
}

type flags struct {
	file   string
	system string
	raw    bool
}

func NewCommand(target Target, deps Deps) *cobra.Command {
	if deps.ReadFile == nil {
		deps.ReadFile = os.ReadFile
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	var f flags
	cmd := &cobra.Command{
		Use:           target.Use + " [prompt]",
		Short:         target.Short,
		Example:       target.Example,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := runner{target: target, deps: deps, flags: f}
			return r.run(cmd, args)
		},
	}
	cmd.SetOut(deps.Out)
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "Read prompt from a file instead")
	cmd.Flags().StringVarP(&f.system, "system", "s", "", "Custom system prompt (optional)")
	cmd.Flags().BoolVarP(&f.raw, "raw", "r", false, "Output only the response without headers")
	return cmd
}

type runner struct {
	target Target
	deps   Deps
	flags  flags
}

func (r runner) run(cmd *cobra.Command, args []string) error {
	prompt, err := r.prompt(cmd, args)
	if err != nil {
		return err
	}

	env, key := r.deps.Factory.Credential(r.target.Provider)
	if key == "" {
		r.printf("ERROR: %s environment variable not set.\n", env)
		r.printf("Set it with: export %s='your-key-here'\n", env)
		return ErrReported
	}

	client, err := r.deps.Factory.CreateClient(r.target.Provider, r.target.Model)
	if err != nil {
		r.printf("ERROR: %v\n", err)
		return ErrReported
	}

	if !r.flags.raw {
		r.banner(prompt)
	}

	system := r.flags.system
	if system == "" {
		system = r.target.SystemPrompt
	}
	r.printf("%s\n", r.generate(cmd.Context(), client, system, prompt))

	if !r.flags.raw {
		r.printf("%s\n", strings.Repeat("=", ruleWidth))
	}
	return nil
}

func (r runner) prompt(cmd *cobra.Command, args []string) (string, error) {
	var prompt string
	switch {
	case r.flags.file != "":
		data, err := r.deps.ReadFile(r.flags.file)
		if errors.Is(err, fs.ErrNotExist) {
			r.printf("ERROR: File not found: %s\n", r.flags.file)
			return "", ErrReported
		}
		if err != nil {
			r.printf("ERROR reading file: %v\n", err)
			return "", ErrReported
		}
		prompt = strings.TrimSpace(string(data))
	case len(args) == 1 && args[0] != "":
		prompt = args[0]
	default:
		_ = cmd.Help()
		r.printf("\nERROR: No prompt provided. Use positional argument or --file\n")
		return "", ErrReported
	}

	if prompt == "" {
		r.printf("ERROR: Empty prompt\n")
		return "", ErrReported
	}
	return prompt, nil
}

// generate never fails the command: a failed call is printed as the reply.
func (r runner) generate(ctx context.Context, client llm.Client, system, prompt string) string {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := client.Generate(ctx, llm.Prompt(system, prompt))
	if err != nil {
		return llm.Describe(err)
	}
	return resp.Content
}

func (r runner) banner(prompt string) {
	rule := strings.Repeat("=", ruleWidth)
	thin := strings.Repeat("-", ruleWidth)
	title := fmt.Sprintf("SENDING TO %s (%s)", r.target.Label, r.target.Model)
	if r.deps.Color {
		title = color.New(color.FgCyan, color.OpBold).Render(title)
	}

	preview := prompt
	if len([]rune(preview)) > previewLength {
		preview = string([]rune(preview)[:previewLength]) + "..."
	}

	r.printf("%s\n%s\n%s\n", rule, title, rule)
	r.printf("PROMPT:\n%s\n", preview)
	r.printf("%s\nRESPONSE:\n%s\n", thin, thin)
}

func (r runner) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.deps.Out, format, a...)
}
