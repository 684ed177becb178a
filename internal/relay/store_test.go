package relay

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"agent-bridge/internal/clock"
)

var fixedAt = time.Date(2025, 3, 4, 5, 6, 7, 891011000, time.UTC)

func newTestStore() *Store {
	return NewStore(clock.Func(func() time.Time { return fixedAt }))
}

func TestSend_AssignsSequentialIDs(t *testing.T) {
	req := require.New(t)
	s := newTestStore()

	m1, err := s.Send("claude", "gpt", "hi")
	req.NoError(err)
	m2, err := s.Send("gpt", "claude", "yo")
	req.NoError(err)

	req.Equal(int64(1), m1.ID)
	req.Equal(int64(2), m2.ID)
	req.Equal("2025-03-04T05:06:07.891011Z", m1.Timestamp)
	req.False(m1.Read)

	hist := s.History(0)
	req.Len(hist, 2)
	req.Equal(m1, hist[0])
	req.Equal(m2, hist[1])

	gptQueue, err := s.Retrieve(AgentGPT, false)
	req.NoError(err)
	req.Len(gptQueue, 1)
	req.Equal(int64(1), gptQueue[0].ID)
}

func TestSend_RejectsWithoutConsumingID(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		content string
		field   string
	}{
		{"unknown recipient", "claude", "eve", "hi", "recipient"},
		{"unknown sender", "eve", "gpt", "hi", "sender"},
		{"empty content", "claude", "gpt", "", "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			s := newTestStore()

			_, err := s.Send(tc.from, tc.to, tc.content)
			req.Error(err)
			req.True(errors.Is(err, ErrValidation))

			var verr *ValidationError
			req.True(errors.As(err, &verr))
			req.Equal(tc.field, verr.Field)

			req.Empty(s.History(0))
			req.Equal(0, s.Status().TotalMessages)

			m, err := s.Send("claude", "gpt", "ok")
			req.NoError(err)
			req.Equal(int64(1), m.ID)
		})
	}
}

func TestSend_ZeroIsContent(t *testing.T) {
	s := newTestStore()

	m, err := s.Send("gpt", "claude", "0")
	require.NoError(t, err)
	require.Equal(t, "0", m.Content)
}

func TestSend_InvalidAgentMessage(t *testing.T) {
	s := newTestStore()

	_, err := s.Send("claude", "eve", "hi")
	require.EqualError(t, err, "Invalid recipient 'eve'. Must be one of: claude, gpt")
}

func TestRetrieve_MarksReadWithoutClearing(t *testing.T) {
	req := require.New(t)
	s := newTestStore()
	_, err := s.Send("claude", "gpt", "hi")
	req.NoError(err)
	_, err = s.Send("gpt", "claude", "yo")
	req.NoError(err)

	first, err := s.Retrieve(AgentGPT, false)
	req.NoError(err)
	req.Len(first, 1)
	req.Equal(int64(1), first[0].ID)
	req.True(first[0].Read)

	second, err := s.Retrieve(AgentGPT, false)
	req.NoError(err)
	req.Equal(first, second)

	st := s.Status()
	req.Equal(QueueStatus{Pending: 1, Unread: 0}, st.Queues[AgentGPT])
	req.Equal(QueueStatus{Pending: 1, Unread: 1}, st.Queues[AgentClaude])
	req.Equal(2, st.TotalMessages)

	// The history shares the record, so the read flag shows there too.
	hist := s.History(0)
	req.True(hist[0].Read)
	req.False(hist[1].Read)
}

func TestRetrieve_ClearAfterKeepsHistory(t *testing.T) {
	req := require.New(t)
	s := newTestStore()
	_, _ = s.Send("claude", "gpt", "hi")
	_, _ = s.Send("gpt", "claude", "yo")

	got, err := s.Retrieve(AgentGPT, true)
	req.NoError(err)
	req.Len(got, 1)
	req.True(got[0].Read)

	again, err := s.Retrieve(AgentGPT, false)
	req.NoError(err)
	req.NotNil(again)
	req.Empty(again)

	req.Len(s.History(0), 2)
	req.Equal(0, s.Status().Queues[AgentGPT].Pending)
}

func TestRetrieve_InvalidAgent(t *testing.T) {
	s := newTestStore()

	_, err := s.Retrieve(Agent("eve"), false)
	require.ErrorIs(t, err, ErrValidation)
	require.EqualError(t, err, "Invalid agent 'eve'. Must be one of: claude, gpt")
}

func TestRetrieve_SnapshotIsDetached(t *testing.T) {
	s := newTestStore()
	_, _ = s.Send("claude", "gpt", "hi")

	got, err := s.Retrieve(AgentGPT, false)
	require.NoError(t, err)
	got[0].Content = "mutated"

	hist := s.History(0)
	require.Equal(t, "hi", hist[0].Content)
}

func TestClear(t *testing.T) {
	req := require.New(t)
	s := newTestStore()

	n, err := s.Clear(AgentClaude)
	req.NoError(err)
	req.Equal(0, n)

	_, _ = s.Send("gpt", "claude", "one")
	_, _ = s.Send("gpt", "claude", "two")
	_, _ = s.Retrieve(AgentClaude, false)
	_, _ = s.Send("gpt", "claude", "three")

	n, err = s.Clear(AgentClaude)
	req.NoError(err)
	req.Equal(3, n)
	req.Equal(QueueStatus{}, s.Status().Queues[AgentClaude])

	hist := s.History(0)
	req.Len(hist, 3)
	req.True(hist[0].Read)
	req.True(hist[1].Read)
	req.False(hist[2].Read)

	_, err = s.Clear(Agent(""))
	req.ErrorIs(err, ErrValidation)
}

func TestHistory_Limit(t *testing.T) {
	req := require.New(t)
	s := newTestStore()
	_, _ = s.Send("claude", "gpt", "hi")
	_, _ = s.Send("gpt", "claude", "yo")

	last := s.History(1)
	req.Len(last, 1)
	req.Equal(int64(2), last[0].ID)

	all := s.History(50)
	req.Len(all, 2)
	req.Equal(int64(1), all[0].ID)

	for i := 0; i < DefaultHistoryLimit+5; i++ {
		_, err := s.Send("claude", "gpt", "bulk")
		req.NoError(err)
	}
	def := s.History(0)
	req.Len(def, DefaultHistoryLimit)
	req.Equal(int64(DefaultHistoryLimit+7), def[len(def)-1].ID)
}

func TestHistory_DoesNotMarkRead(t *testing.T) {
	s := newTestStore()
	_, _ = s.Send("claude", "gpt", "hi")
	_ = s.History(10)

	require.Equal(t, 1, s.Status().Queues[AgentGPT].Unread)
}

func TestRetrieveRoundTripsWithHistory(t *testing.T) {
	req := require.New(t)
	s := newTestStore()
	_, _ = s.Send("claude", "gpt", "a")
	_, _ = s.Send("gpt", "claude", "b")
	_, _ = s.Send("claude", "gpt", "c")

	got, err := s.Retrieve(AgentGPT, false)
	req.NoError(err)

	byID := map[int64]Message{}
	for _, m := range s.History(1000) {
		byID[m.ID] = m
	}
	for _, m := range got {
		req.Equal(m, byID[m.ID])
	}
	req.False(byID[2].Read)
}

func TestStatus_EmptyStoreListsBothAgents(t *testing.T) {
	st := newTestStore().Status()

	require.Len(t, st.Queues, 2)
	require.Contains(t, st.Queues, AgentClaude)
	require.Contains(t, st.Queues, AgentGPT)
	require.Equal(t, 0, st.TotalMessages)
}

func TestConcurrentSendsProduceGaplessIDs(t *testing.T) {
	req := require.New(t)
	s := NewStore(nil)

	const writers, perWriter = 8, 50
	var wg sync.WaitGroup
	ids := make(chan int64, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			from, to := "claude", "gpt"
			if w%2 == 1 {
				from, to = to, from
			}
			for i := 0; i < perWriter; i++ {
				m, err := s.Send(from, to, "msg")
				if err != nil {
					t.Error(err)
					return
				}
				ids <- m.ID
			}
		}(w)
	}
	// Readers race the writers to exercise the read flag path.
	for r := 0; r < 2; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, _ = s.Retrieve(Agents()[r], i%10 == 0)
				_ = s.Status()
			}
		}(r)
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		req.False(seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	req.Len(seen, writers*perWriter)

	hist := s.History(writers * perWriter)
	req.Len(hist, writers*perWriter)
	for i, m := range hist {
		req.Equal(int64(i+1), m.ID)
	}
}
