package scheduler

import (
	"context"
	"log/slog"

	"agent-bridge/internal/relay"
)

type StatusSource interface {
	Status() relay.Status
}

// StatusReport logs one line per agent queue plus the running total.
func StatusReport(log *slog.Logger, src StatusSource) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		st := src.Status()
		for _, a := range relay.Agents() {
			q := st.Queues[a]
			log.InfoContext(ctx, "Queue status", "agent", a, "pending", q.Pending, "unread", q.Unread)
		}
		log.InfoContext(ctx, "Relay status", "total_messages", st.TotalMessages)
		return nil
	}
}
