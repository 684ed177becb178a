package main

import (
	"errors"
	"fmt"
	"os"

	"agent-bridge/internal/askcli"
	"agent-bridge/internal/config"
	"agent-bridge/internal/llm"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load[config.LLM]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	cmd := askcli.NewCommand(askcli.Claude(cfg), askcli.Deps{
		Factory: llm.NewFactory(cfg),
		Out:     os.Stdout,
		Color:   true,
	})
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, askcli.ErrReported) {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}
}
