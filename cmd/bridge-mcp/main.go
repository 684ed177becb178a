package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"agent-bridge/internal/bridgeclient"
	"agent-bridge/internal/config"
	"agent-bridge/internal/mcpbridge"
	"agent-bridge/internal/relay"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bridge-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load[config.Client]()
	if err != nil {
		return err
	}
	self, err := relay.ParseAgent("agent", cfg.Agent)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	client := bridgeclient.New(cfg.BridgeURL, cfg.BridgeTimeout)
	server := mcpbridge.NewServer(mcpbridge.NewTools(client, self, log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting bridge MCP server on stdio", "agent", self, "bridge", cfg.BridgeURL)
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}
