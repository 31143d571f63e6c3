package telegram

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/telegram"
)

// allowedUpdates типы обновлений, которые обрабатывает бот
var allowedUpdates = []string{"message", "callback_query", "pre_checkout_query"}

type setWebhookRequest struct {
	URL                string   `json:"url"`
	SecretToken        string   `json:"secret_token,omitempty"`
	AllowedUpdates     []string `json:"allowed_updates"`
	DropPendingUpdates bool     `json:"drop_pending_updates,omitempty"`
}

type deleteWebhookRequest struct {
	DropPendingUpdates bool `json:"drop_pending_updates,omitempty"`
}

// BotCommand команда бота для меню
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// BotInfo ответ getMe
type BotInfo struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

// SetWebhook регистрирует вебхук. secretToken приходит обратно в заголовке X-Telegram-Bot-Api-Secret-Token
func (c *Client) SetWebhook(ctx context.Context, url, secretToken string) error {
	req := setWebhookRequest{
		URL:            url,
		SecretToken:    secretToken,
		AllowedUpdates: allowedUpdates,
	}
	if err := c.call(ctx, "setWebhook", req, nil); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	c.log.Info("webhook registered", "url", url)
	return nil
}

// DeleteWebhook нужно вызывать перед запуском polling
func (c *Client) DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error {
	if err := c.call(ctx, "deleteWebhook", deleteWebhookRequest{DropPendingUpdates: dropPendingUpdates}, nil); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}

	c.log.Info("webhook deleted successfully")
	return nil
}

func (c *Client) GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error) {
	var info telegram.WebhookInfo
	if err := c.call(ctx, "getWebhookInfo", nil, &info); err != nil {
		return nil, fmt.Errorf("get webhook info: %w", err)
	}
	return &info, nil
}

// SetMyCommands регистрирует команды бота в меню
func (c *Client) SetMyCommands(ctx context.Context, commands []BotCommand) error {
	reqBody := struct {
		Commands []BotCommand `json:"commands"`
	}{
		Commands: commands,
	}

	if err := c.call(ctx, "setMyCommands", reqBody, nil); err != nil {
		return fmt.Errorf("set my commands: %w", err)
	}

	c.log.Info("bot commands registered successfully", "commands_count", len(commands))
	return nil
}

// GetMe проверка токена при старте
func (c *Client) GetMe(ctx context.Context) (*BotInfo, error) {
	var info BotInfo
	if err := c.call(ctx, "getMe", nil, &info); err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}

	c.log.Info("bot info retrieved successfully", "username", info.Username)
	return &info, nil
}
