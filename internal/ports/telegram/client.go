package telegram

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// IClient методы Bot API, которые нужны для диалога с покупателем
type IClient interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *domain.InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallbackQuery(ctx context.Context, callbackID string, text string, showAlert bool) error
}

// WebhookInfo ответ getWebhookInfo
type WebhookInfo struct {
	URL                  string `json:"url"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
	MaxConnections       int    `json:"max_connections,omitempty"`
}

// IWebhookManager регистрация вебхука (старт приложения и админка)
type IWebhookManager interface {
	SetWebhook(ctx context.Context, url, secretToken string) error
	DeleteWebhook(ctx context.Context, dropPendingUpdates bool) error
	GetWebhookInfo(ctx context.Context) (*WebhookInfo, error)
}
