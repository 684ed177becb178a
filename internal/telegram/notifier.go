// Package telegram mirrors relayed messages into a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"agent-bridge/internal/relay"
)

// Telegram rejects longer texts.
const maxMessageRunes = 4096

// Notifier queues accepted messages; Run delivers them.
type Notifier struct {
	s      sender
	chatID int64
	log    *slog.Logger
	queue  chan relay.Message
}

var _ relay.Listener = (*Notifier)(nil)

func New(botToken string, chatID int64, buffer int, log *slog.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	log.Info("Telegram mirror authorized", "bot", api.Self.UserName, "chat_id", chatID)
	return newNotifier(botAPISender{api: api}, chatID, buffer, log), nil
}

func newNotifier(s sender, chatID int64, buffer int, log *slog.Logger) *Notifier {
	if buffer < 1 {
		buffer = 1
	}
	return &Notifier{s: s, chatID: chatID, log: log, queue: make(chan relay.Message, buffer)}
}

// MessageAccepted enqueues m and drops it when the buffer is full.
func (n *Notifier) MessageAccepted(_ context.Context, m relay.Message) error {
	select {
	case n.queue <- m:
		return nil
	default:
		return fmt.Errorf("telegram buffer full, dropped message %d", m.ID)
	}
}

// Run delivers queued messages until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case m := <-n.queue:
			n.deliver(m)
		}
	}
}

func (n *Notifier) deliver(m relay.Message) {
	msg := tgbotapi.NewMessage(n.chatID, Format(m))
	if _, err := n.s.Send(msg); err != nil {
		n.log.Error("telegram send failed", "id", m.ID, "error", err)
	}
}

// Format renders m as plain text for the chat.
func Format(m relay.Message) string {
	text := fmt.Sprintf("%s → %s #%d\n%s", m.From, m.To, m.ID, m.Content)
	if r := []rune(text); len(r) > maxMessageRunes {
		text = string(r[:maxMessageRunes-1]) + "…"
	}
	return text
}
