package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/scottlepp/gen/internal/core/ports"
)

// Notifier sends a one-way summary of each committed action to the
// operator's chat. Delivery is best effort; workflows never block on it.
type Notifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

var _ ports.Notifier = (*Notifier)(nil)

func NewNotifier(token, chatIDStr string) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat id: %w", err)
	}

	return &Notifier{Bot: bot, ChatID: chatID}, nil
}

func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	msgText := fmt.Sprintf("*[%s]*\n\n%s", escapeMarkdown(title), escapeMarkdown(body))
	msg := tgbotapi.NewMessage(n.ChatID, msgText)
	msg.ParseMode = "Markdown"

	if _, err := n.Bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// escapeMarkdown prevents telegram markdown parse errors on generated text.
func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(text)
}
