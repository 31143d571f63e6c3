package service

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// IUpdateHandler обработка одного обновления Telegram (вебхук и polling)
type IUpdateHandler interface {
	HandleUpdate(ctx context.Context, update *domain.Update) error
}

// ITelegramService отправка сообщений от имени бота с логированием ошибок
type ITelegramService interface {
	SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error
	// Reply редактирует сообщение target.MessageID или отправляет новое, если MessageID == 0
	Reply(ctx context.Context, target domain.ReplyTarget, text string, keyboard *domain.InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallbackQuery(ctx context.Context, callbackID, text string) error
}
