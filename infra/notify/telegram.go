// Package notify delivers admin notifications to chat sinks.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's limit for one text message.
const maxMessageLength = 4096

// Telegram posts notifications to one chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegram authorizes the bot against the Bot API.
func NewTelegram(token string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, tgbotapi.APIEndpoint, chatID, logger)
}

// NewTelegramWithEndpoint is NewTelegram against a custom Bot API endpoint,
// formatted like tgbotapi.APIEndpoint.
func NewTelegramWithEndpoint(token, endpoint string, chatID int64, logger *slog.Logger) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram: bot token and chat id are required")
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger = logger.With("sink", "telegram")
	logger.Info("Telegram bot authorized", "username", api.Self.UserName)
	return &Telegram{api: api, chatID: chatID, logger: logger}, nil
}

// Send posts text, split into as many messages as the length limit needs.
func (t *Telegram) Send(ctx context.Context, text string) error {
	for _, part := range split(text, maxMessageLength) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.api.Send(tgbotapi.NewMessage(t.chatID, part)); err != nil {
			return fmt.Errorf("telegram: send failed: %w", err)
		}
	}
	return nil
}

func split(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	return parts
}

// Log writes notifications to the log. Used when no chat sink is configured.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a log sink.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With("sink", "log")}
}

// Send logs text at info level.
func (l *Log) Send(_ context.Context, text string) error {
	l.logger.Info("notification", "text", text)
	return nil
}
