package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/telegram"
)

// messageSender часть telegram.Client, через которую уходят алерты
type messageSender interface {
	SendMessageWithRequest(ctx context.Context, req telegram.SendMessageRequest) (*telegram.SentMessage, error)
}

// Client отправляет алерты через Telegram в группу или топик форума
type Client struct {
	sender          messageSender
	chatID          int64
	messageThreadID *int64
	log             *slog.Logger
}

func NewClient(cfg *Config, sender messageSender, log *slog.Logger) *Client {
	return &Client{
		sender:          sender,
		chatID:          cfg.ChatID,
		messageThreadID: cfg.MessageThreadID,
		log:             log,
	}
}

// SendAlert отправляет алерт без parse_mode, чтобы текст ошибки не ломал разметку
func (c *Client) SendAlert(ctx context.Context, message string) error {
	if c == nil || c.sender == nil {
		return fmt.Errorf("alerter client is not initialized")
	}

	req := telegram.SendMessageRequest{
		ChatID:          c.chatID,
		Text:            message,
		MessageThreadID: c.messageThreadID,
	}

	if _, err := c.sender.SendMessageWithRequest(ctx, req); err != nil {
		c.log.Warn("failed to send alert",
			"error", err,
			"chat_id", c.chatID,
			"message_thread_id", c.messageThreadID,
		)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	c.log.Debug("alert sent successfully",
		"chat_id", c.chatID,
		"message_thread_id", c.messageThreadID,
	)
	return nil
}
