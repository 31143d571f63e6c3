package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// SendMessageRequest запрос sendMessage
type SendMessageRequest struct {
	ChatID          int64              `json:"chat_id"`
	Text            string             `json:"text"`
	ParseMode       string             `json:"parse_mode,omitempty"` // "HTML", "Markdown", "MarkdownV2"
	ReplyMarkup     domain.ReplyMarkup `json:"reply_markup,omitempty"`
	MessageThreadID *int64             `json:"message_thread_id,omitempty"` // ID топика форума
}

// SentMessage результат отправки сообщения
type SentMessage struct {
	MessageID int64 `json:"message_id"`
	Chat      struct {
		ID int64 `json:"id"`
	} `json:"chat"`
	Date int64 `json:"date"`
}

type editMessageTextRequest struct {
	ChatID      int64                        `json:"chat_id"`
	MessageID   int64                        `json:"message_id"`
	Text        string                       `json:"text"`
	ParseMode   string                       `json:"parse_mode,omitempty"`
	ReplyMarkup *domain.InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type deleteMessageRequest struct {
	ChatID    int64 `json:"chat_id"`
	MessageID int64 `json:"message_id"`
}

// AnswerCallbackQueryRequest запрос на ответ callback query
type AnswerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
}

// SendMessage отправляет HTML-сообщение, markup может быть nil
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error {
	_, err := c.SendMessageWithRequest(ctx, SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseModeHTML,
		ReplyMarkup: markup,
	})
	return err
}

// SendMessageWithRequest отправка с полным набором полей (топики форума для алертов)
func (c *Client) SendMessageWithRequest(ctx context.Context, req SendMessageRequest) (*SentMessage, error) {
	var sent SentMessage
	if err := c.call(ctx, "sendMessage", req, &sent); err != nil {
		return nil, fmt.Errorf("send message [chat_id=%d]: %w", req.ChatID, err)
	}

	c.log.Debug("message sent successfully",
		"chat_id", req.ChatID,
		"message_id", sent.MessageID,
	)
	return &sent, nil
}

// EditMessageText редактирует сообщение на месте. "message is not modified" не считается ошибкой
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *domain.InlineKeyboardMarkup) error {
	req := editMessageTextRequest{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ParseMode:   parseModeHTML,
		ReplyMarkup: markup,
	}

	err := c.call(ctx, "editMessageText", req, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotModified() {
			c.log.Debug("message is not modified", "chat_id", chatID, "message_id", messageID)
			return nil
		}
		return fmt.Errorf("edit message [chat_id=%d, message_id=%d]: %w", chatID, messageID, err)
	}

	c.log.Debug("message edited successfully", "chat_id", chatID, "message_id", messageID)
	return nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	req := deleteMessageRequest{ChatID: chatID, MessageID: messageID}
	if err := c.call(ctx, "deleteMessage", req, nil); err != nil {
		return fmt.Errorf("delete message [chat_id=%d, message_id=%d]: %w", chatID, messageID, err)
	}
	return nil
}

// AnswerCallbackQuery отправляет ответ на callback query
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string, text string, showAlert bool) error {
	req := AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}

	if err := c.call(ctx, "answerCallbackQuery", req, nil); err != nil {
		return fmt.Errorf("answer callback query [callback_id=%s]: %w", callbackID, err)
	}

	c.log.Debug("callback query answered successfully", "callback_id", callbackID)
	return nil
}
