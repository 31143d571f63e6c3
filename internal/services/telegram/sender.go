package telegram

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// SendMessage отправляет HTML-сообщение, markup может быть nil
func (s *Service) SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error {
	if err := s.Client.SendMessage(ctx, chatID, text, markup); err != nil {
		s.Log.Error("failed to send message",
			"error", err,
			"chat_id", chatID,
		)
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.Log.Debug("message sent successfully", "chat_id", chatID)
	return nil
}

// Reply редактирует исходное сообщение или отправляет новое
func (s *Service) Reply(ctx context.Context, target domain.ReplyTarget, text string, keyboard *domain.InlineKeyboardMarkup) error {
	if !target.IsEdit() {
		// typed nil в интерфейсе сериализовался бы как null
		if keyboard == nil {
			return s.SendMessage(ctx, target.ChatID, text, nil)
		}
		return s.SendMessage(ctx, target.ChatID, text, keyboard)
	}

	if err := s.Client.EditMessageText(ctx, target.ChatID, target.MessageID, text, keyboard); err != nil {
		s.Log.Error("failed to edit message",
			"error", err,
			"chat_id", target.ChatID,
			"message_id", target.MessageID,
		)
		return fmt.Errorf("failed to edit message: %w", err)
	}

	s.Log.Debug("message edited successfully",
		"chat_id", target.ChatID,
		"message_id", target.MessageID,
	)
	return nil
}

// DeleteMessage удаляет сообщение бота
func (s *Service) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	if err := s.Client.DeleteMessage(ctx, chatID, messageID); err != nil {
		s.Log.Error("failed to delete message",
			"error", err,
			"chat_id", chatID,
			"message_id", messageID,
		)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallbackQuery отправляет ответ на callback query
func (s *Service) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	if err := s.Client.AnswerCallbackQuery(ctx, callbackID, text, false); err != nil {
		s.Log.Error("failed to answer callback query",
			"error", err,
			"callback_id", callbackID,
		)
		return fmt.Errorf("failed to answer callback query: %w", err)
	}

	s.Log.Debug("callback query answered successfully", "callback_id", callbackID)
	return nil
}
