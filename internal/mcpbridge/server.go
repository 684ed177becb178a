// Package mcpbridge exposes a running relay to MCP hosts as a set of tools.
package mcpbridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"agent-bridge/internal/bridgeclient"
	"agent-bridge/internal/relay"
)

const (
	implName    = "agent-bridge-mcp"
	implVersion = "1.0.0"
)

// Bridge is the subset of *bridgeclient.Client the tools call.
type Bridge interface {
	Send(ctx context.Context, from, to relay.Agent, content string) (bridgeclient.SendResult, error)
	Messages(ctx context.Context, agent relay.Agent, clear bool) (bridgeclient.Inbox, error)
	Clear(ctx context.Context, agent relay.Agent) (bridgeclient.ClearResult, error)
	Status(ctx context.Context) (bridgeclient.Status, error)
	History(ctx context.Context, limit int) (bridgeclient.History, error)
}

type SendParams struct {
	From    string `json:"from,omitempty" mcp:"sending agent (claude or gpt); defaults to this server's agent"`
	To      string `json:"to" mcp:"recipient agent: claude or gpt"`
	Content string `json:"content" mcp:"message text"`
}

type CheckParams struct {
	Agent string `json:"agent,omitempty" mcp:"whose queue to read; defaults to this server's agent"`
	Clear bool   `json:"clear,omitempty" mcp:"empty the queue after reading"`
}

type ClearParams struct {
	Agent string `json:"agent,omitempty" mcp:"whose queue to clear; defaults to this server's agent"`
}

type StatusParams struct{}

type HistoryParams struct {
	Limit int `json:"limit,omitempty" mcp:"number of most recent messages (default 100)"`
}

// Tools holds the handlers. Self is the agent used when a call omits one.
type Tools struct {
	bridge Bridge
	self   relay.Agent
	log    *slog.Logger
}

func NewTools(b Bridge, self relay.Agent, log *slog.Logger) *Tools {
	return &Tools{bridge: b, self: self, log: log}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(t *Tools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    implName,
		Version: implVersion,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_message",
		Description: "Sends a message to the other agent through the bridge",
	}, t.SendMessage)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_messages",
		Description: "Returns pending messages for an agent and marks them read",
	}, t.CheckMessages)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_messages",
		Description: "Empties an agent's pending queue; history is kept",
	}, t.ClearMessages)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bridge_status",
		Description: "Reports pending and unread counts per agent",
	}, t.BridgeStatus)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "message_history",
		Description: "Returns the most recent messages across both agents",
	}, t.MessageHistory)

	return server
}

func (t *Tools) SendMessage(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[SendParams]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments
	from := t.agentOr(args.From)
	res, err := t.bridge.Send(ctx, from, relay.Agent(args.To), args.Content)
	if err != nil {
		return t.failure("send_message", err), nil
	}
	t.log.Info("message relayed", "from", from, "to", args.To, "id", res.MessageID)
	return text(fmt.Sprintf("Message #%d sent from %s to %s at %s", res.MessageID, from, args.To, res.Timestamp)), nil
}

func (t *Tools) CheckMessages(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CheckParams]) (*mcp.CallToolResultFor[any], error) {
	agent := t.agentOr(params.Arguments.Agent)
	inbox, err := t.bridge.Messages(ctx, agent, params.Arguments.Clear)
	if err != nil {
		return t.failure("check_messages", err), nil
	}
	if inbox.Count == 0 {
		return text(fmt.Sprintf("No pending messages for %s", agent)), nil
	}
	header := fmt.Sprintf("%d message(s) for %s:", inbox.Count, agent)
	return text(header + "\n" + formatMessages(inbox.Messages)), nil
}

func (t *Tools) ClearMessages(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[ClearParams]) (*mcp.CallToolResultFor[any], error) {
	agent := t.agentOr(params.Arguments.Agent)
	res, err := t.bridge.Clear(ctx, agent)
	if err != nil {
		return t.failure("clear_messages", err), nil
	}
	return text(fmt.Sprintf("Cleared %d message(s) for %s", res.ClearedCount, agent)), nil
}

func (t *Tools) BridgeStatus(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[StatusParams]) (*mcp.CallToolResultFor[any], error) {
	st, err := t.bridge.Status(ctx)
	if err != nil {
		return t.failure("bridge_status", err), nil
	}
	lines := lo.Map(relay.Agents(), func(a relay.Agent, _ int) string {
		q := st.Queues[a]
		return fmt.Sprintf("  %s: %d pending, %d unread", a, q.Pending, q.Unread)
	})
	out := fmt.Sprintf("Bridge %s, %d message(s) total\n%s", st.Status, st.TotalMessages, strings.Join(lines, "\n"))
	return text(out), nil
}

func (t *Tools) MessageHistory(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[HistoryParams]) (*mcp.CallToolResultFor[any], error) {
	hist, err := t.bridge.History(ctx, params.Arguments.Limit)
	if err != nil {
		return t.failure("message_history", err), nil
	}
	if hist.Count == 0 {
		return text("History is empty"), nil
	}
	return text(formatMessages(hist.Messages)), nil
}

func (t *Tools) agentOr(s string) relay.Agent {
	if s == "" {
		return t.self
	}
	return relay.Agent(s)
}

func (t *Tools) failure(tool string, err error) *mcp.CallToolResultFor[any] {
	t.log.Warn("bridge call failed", "tool", tool, "error", err)
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: "Bridge error: " + err.Error()}},
	}
}

func text(s string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}

func formatMessages(msgs []relay.Message) string {
	return strings.Join(lo.Map(msgs, func(m relay.Message, _ int) string {
		return fmt.Sprintf("[#%d %s] %s -> %s: %q", m.ID, m.Timestamp, m.From, m.To, m.Content)
	}), "\n")
}
