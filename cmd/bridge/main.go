package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mama165/sdk-go/logs"

	"agent-bridge/internal/clock"
	"agent-bridge/internal/config"
	"agent-bridge/internal/gateway"
	"agent-bridge/internal/relay"
	"agent-bridge/internal/scheduler"
	"agent-bridge/internal/storage"
	"agent-bridge/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load[config.Server]()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.System{}
	store := relay.NewStore(clk)

	listeners, err := buildListeners(ctx, cfg, log)
	if err != nil {
		return err
	}

	sched := scheduler.New(log)
	sched.SetReportFunction(scheduler.StatusReport(log, store))
	if err := sched.Start(cfg.StatusReportSchedule); err != nil {
		return err
	}
	defer sched.Stop()

	srv := gateway.New(log, store, clk, gateway.Options{
		Addr:           cfg.Addr(),
		RequestTimeout: cfg.RequestTimeout,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
	}, listeners...)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down agent bridge", "grace", cfg.ShutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	status := store.Status()
	log.Info("Agent bridge stopped", "total_messages", status.TotalMessages)
	return nil
}

// buildListeners wires the optional transcript and Telegram mirror.
func buildListeners(ctx context.Context, cfg *config.Server, log *slog.Logger) ([]relay.Listener, error) {
	var listeners []relay.Listener

	if cfg.TranscriptPath != "" {
		rec, err := storage.NewFileRecorder(cfg.TranscriptPath)
		if err != nil {
			return nil, err
		}
		log.Info("Transcript enabled", "path", rec.Path())
		listeners = append(listeners, rec)
	}

	if cfg.TelegramEnabled() {
		n, err := telegram.New(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramBuffer, log)
		if err != nil {
			return nil, err
		}
		go n.Run(ctx)
		listeners = append(listeners, n)
	}

	return listeners, nil
}
