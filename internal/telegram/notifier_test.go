package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agent-bridge/internal/relay"
)

type fakeSender struct {
	mu     sync.Mutex
	sent   []tgbotapi.MessageConfig
	failOn int64
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.failOn != 0 && strings.Contains(msg.Text, "#1\n") {
		return tgbotapi.Message{}, errors.New("chat not found")
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.Text)
	}
	return out
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func msg(id int64, content string) relay.Message {
	return relay.Message{ID: id, From: relay.AgentClaude, To: relay.AgentGPT, Content: content}
}

func TestNotifierDeliversInOrder(t *testing.T) {
	fs := &fakeSender{failOn: 1}
	n := newNotifier(fs, -100, 8, discard)

	for i := int64(1); i <= 3; i++ {
		if err := n.MessageAccepted(context.Background(), msg(i, "hello")); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for len(fs.texts()) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	got := fs.texts()
	if len(got) != 3 {
		t.Fatalf("want 3 sends (a failed send must not stop the loop), got %d", len(got))
	}
	if got[0] != "claude → gpt #1\nhello" || !strings.HasPrefix(got[2], "claude → gpt #3\n") {
		t.Fatalf("unexpected texts: %q", got)
	}
	if fs.sent[0].ChatID != -100 {
		t.Fatalf("wrong chat id: %d", fs.sent[0].ChatID)
	}
}

func TestNotifierDropsWhenFull(t *testing.T) {
	n := newNotifier(&fakeSender{}, 1, 1, discard)

	if err := n.MessageAccepted(context.Background(), msg(1, "a")); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := n.MessageAccepted(context.Background(), msg(2, "b")); err == nil {
		t.Fatalf("expected drop error when buffer is full")
	}
}

func TestFormatTruncatesLongContent(t *testing.T) {
	text := Format(msg(7, strings.Repeat("ж", 5000)))
	if r := []rune(text); len(r) != maxMessageRunes || r[len(r)-1] != '…' {
		t.Fatalf("unexpected length %d", len(r))
	}
}
