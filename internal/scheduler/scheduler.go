// Package scheduler runs periodic jobs next to the relay.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron       *cron.Cron
	log        *slog.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	reportFunc func(ctx context.Context) error
	started    bool
}

func New(log *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) SetReportFunction(f func(ctx context.Context) error) {
	s.reportFunc = f
}

// Start schedules the report on spec (standard cron or @every). An empty
// spec or a missing report function leaves the scheduler idle.
func (s *Scheduler) Start(spec string) error {
	if spec == "" || s.reportFunc == nil {
		s.log.Debug("Status reporter disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		if err := s.reportFunc(s.ctx); err != nil {
			s.log.Error("Scheduled report failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.started = true
	s.log.Info("Scheduler started", "schedule", spec)
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	running := s.running()
	<-s.cron.Stop().Done()
	s.cancel()
	s.started = false
	if running {
		s.log.Info("Scheduler stopped")
	}
}

func (s *Scheduler) running() bool {
	return s.started && len(s.cron.Entries()) > 0
}
