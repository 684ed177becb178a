package relay

import "context"

// Message is the wire and snapshot form of a relayed message.
type Message struct {
	ID        int64  `json:"id"`
	From      Agent  `json:"from"`
	To        Agent  `json:"to"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// QueueStatus counts one agent's queue.
type QueueStatus struct {
	Pending int `json:"pending"`
	Unread  int `json:"unread"`
}

// Status is a consistent snapshot of every queue and the history length.
type Status struct {
	Queues        map[Agent]QueueStatus
	TotalMessages int
}

// Listener is told about every accepted message after the store lock has
// been released. Implementations must not call back into the store from
// MessageAccepted while holding their own locks.
type Listener interface {
	MessageAccepted(ctx context.Context, msg Message) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, msg Message) error

func (f ListenerFunc) MessageAccepted(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}
