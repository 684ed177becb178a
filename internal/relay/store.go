// Package relay holds the bridge's in-memory message state: one queue per
// agent, the append-only history and the id counter derived from it.
//
// Every operation runs under a single mutex. The id of a new message is
// len(history)+1 and is assigned in the same critical section that appends
// the message to the history and to the recipient's queue, so no caller can
// observe one without the other.
package relay

import (
	"sync"

	"github.com/samber/lo"

	"agent-bridge/internal/clock"
)

// DefaultHistoryLimit applies when History is called without a positive limit.
const DefaultHistoryLimit = 100

type Store struct {
	mu      sync.Mutex
	clock   clock.Clock
	queues  [len(agents)][]*Message
	history []*Message
}

// NewStore returns an empty store. A nil clock means clock.System.
func NewStore(c clock.Clock) *Store {
	if c == nil {
		c = clock.System{}
	}
	return &Store{clock: c}
}

// Send accepts a message from one agent to another and returns its stored
// form. Nothing is assigned or appended when validation fails.
func (s *Store) Send(from, to, content string) (Message, error) {
	sender, err := ParseAgent("sender", from)
	if err != nil {
		return Message{}, err
	}
	recipient, err := ParseAgent("recipient", to)
	if err != nil {
		return Message{}, err
	}
	if len(content) == 0 {
		return Message{}, MissingField("content")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &Message{
		ID:        int64(len(s.history) + 1),
		From:      sender,
		To:        recipient,
		Content:   content,
		Timestamp: clock.Stamp(s.clock),
	}
	idx := recipient.index()
	s.queues[idx] = append(s.queues[idx], msg)
	s.history = append(s.history, msg)
	return *msg, nil
}

// Retrieve marks every queued message for agent as read and returns them in
// order. With clearAfter the queue is emptied once the snapshot is taken.
// The history keeps its copies either way.
func (s *Store) Retrieve(agent Agent, clearAfter bool) ([]Message, error) {
	idx, err := queueIndex(agent)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.queues[idx] {
		m.Read = true
	}
	out := snapshot(s.queues[idx])
	if clearAfter {
		s.queues[idx] = nil
	}
	return out, nil
}

// Clear drops every queued message for agent and reports how many there
// were. Read flags and the history are left alone.
func (s *Store) Clear(agent Agent) (int, error) {
	idx, err := queueIndex(agent)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.queues[idx])
	s.queues[idx] = nil
	return n, nil
}

func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Queues:        make(map[Agent]QueueStatus, len(agents)),
		TotalMessages: len(s.history),
	}
	for i, a := range agents {
		q := s.queues[i]
		st.Queues[a] = QueueStatus{
			Pending: len(q),
			Unread:  lo.CountBy(q, func(m *Message) bool { return !m.Read }),
		}
	}
	return st
}

// History returns the newest limit messages, oldest first. A non-positive
// limit means DefaultHistoryLimit.
func (s *Store) History(limit int) []Message {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := max(len(s.history)-limit, 0)
	return snapshot(s.history[start:])
}

func queueIndex(agent Agent) (int, error) {
	if _, err := ParseAgent("agent", string(agent)); err != nil {
		return -1, err
	}
	return agent.index(), nil
}

// snapshot copies the records so callers never share them with the store.
func snapshot(msgs []*Message) []Message {
	return lo.Map(msgs, func(m *Message, _ int) Message { return *m })
}
