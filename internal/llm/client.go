package llm

import (
	"context"
	"time"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}

// Options tune a single completion client.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string

	// OpenRouter attribution headers, sent only when set.
	Referrer string
	Title    string

	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// Prompt builds the usual system+user pair; an empty system prompt is omitted.
func Prompt(system, user string) []Message {
	var msgs []Message
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	return append(msgs, Message{Role: RoleUser, Content: user})
}
