package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/metrics"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
)

// HandleUpdate Основной метод для обработки всех типов обновлений.
// Ошибки Bot API логируются и не возвращаются, наверх уходят только ошибки хранилища
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return nil
	}

	kind := update.Kind()
	metrics.IncrementWebhookUpdate(kind.String())

	var err error
	switch kind {
	case domain.UpdateKindText:
		err = s.HandleMessage(ctx, update.Message, update.UpdateID)
	case domain.UpdateKindCallback:
		err = s.HandleCallbackQuery(ctx, update.CallbackQuery, update.UpdateID)
	case domain.UpdateKindPreCheckout:
		err = s.HandlePreCheckoutQuery(ctx, update.PreCheckoutQuery)
	case domain.UpdateKindSuccessfulPayment:
		err = s.HandleSuccessfulPayment(ctx, update.Message)
	default:
		s.Log.Debug("ignoring unrecognized update", "update_id", update.UpdateID)
		return nil
	}

	if err == nil {
		return nil
	}

	metrics.IncrementHandlerError(kind.String())
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}

	s.Log.Warn("update handled with errors",
		"error", err,
		"update_id", update.UpdateID,
		"kind", kind.String(),
	)
	return nil
}

// HandleMessage роутинг текстового сообщения: команды, кнопки клавиатуры, промокод одним словом
func (s *Service) HandleMessage(ctx context.Context, message *domain.Message, updateID int64) error {
	if message == nil || message.Text == nil || message.Chat == nil {
		return fmt.Errorf("message is nil")
	}

	if message.From != nil && message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return nil
	}

	in := incoming{target: domain.ReplyTarget{ChatID: message.Chat.ID}}
	if message.From != nil {
		in.telegramID = message.From.ID
		in.firstName = message.From.FirstName
	}

	text := strings.TrimSpace(*message.Text)

	var err error
	switch {
	case IsCommand(text):
		command, args := ParseCommand(text)
		route, ok := s.commands[command]
		if !ok {
			s.Log.Debug("ignoring unknown command", "command", command, "update_id", updateID)
			return nil
		}
		err = route(ctx, in, args)
	case s.labels[text] != nil:
		err = s.labels[text](ctx, in, "")
	case domain.LooksLikePromoCode(text):
		err = s.ShopUseCase.Promo(ctx, in.target.ChatID, text)
	default:
		s.Log.Debug("ignoring free text", "update_id", updateID)
		return nil
	}

	if err != nil && errors.Is(err, domain.ErrPersistence) {
		s.Log.Error("failed to handle message",
			"error", err,
			"chat_id", in.target.ChatID,
			"update_id", updateID,
		)
		if failErr := s.ShopUseCase.Failure(ctx, in.target.ChatID); failErr != nil {
			s.Log.Warn("failed to send failure notice", "error", failErr)
		}
	}
	return err
}

// HandleCallbackQuery роутинг inline-кнопок. Каждая ветка заканчивается ровно одним answerCallbackQuery
func (s *Service) HandleCallbackQuery(ctx context.Context, query *domain.CallbackQuery, updateID int64) error {
	if query == nil || query.ID == "" {
		return fmt.Errorf("callback query is nil")
	}

	if query.Message == nil || query.Message.Chat == nil {
		s.answerCallback(ctx, query.ID, "")
		return nil
	}

	in := incoming{target: domain.ReplyTarget{ChatID: query.Message.Chat.ID, MessageID: query.Message.MessageID}}
	if query.From != nil {
		in.telegramID = query.From.ID
		in.firstName = query.From.FirstName
	}

	var data string
	if query.Data != nil {
		data = *query.Data
	}

	route, arg := s.matchCallback(data)
	if route == nil {
		s.Log.Debug("ignoring unknown callback", "data", data, "update_id", updateID)
		s.answerCallback(ctx, query.ID, "")
		return nil
	}

	notice, err := route(ctx, in, arg)
	if err != nil && errors.Is(err, domain.ErrPersistence) {
		s.Log.Error("failed to handle callback",
			"error", err,
			"data", data,
			"update_id", updateID,
		)
		notice = texts.Failure
	}

	s.answerCallback(ctx, query.ID, notice)
	return err
}

func (s *Service) matchCallback(data string) (callbackRoute, string) {
	if route, ok := s.callbacks[data]; ok {
		return route, ""
	}
	for prefix, route := range s.callbackPrefix {
		if strings.HasPrefix(data, prefix) {
			return route, strings.TrimPrefix(data, prefix)
		}
	}
	return nil, ""
}

func (s *Service) answerCallback(ctx context.Context, callbackID, text string) {
	// ошибка уже залогирована в AnswerCallbackQuery
	_ = s.AnswerCallbackQuery(ctx, callbackID, text)
}

// ParseCommand возвращает команду без "/" и суффикса @botname, и аргументы после неё
func ParseCommand(text string) (string, string) {
	text = strings.TrimPrefix(text, "/")

	var args string
	if idx := strings.IndexAny(text, " \n\t"); idx != -1 {
		args = strings.TrimSpace(text[idx+1:])
		text = text[:idx]
	}

	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	return strings.ToLower(text), args
}

func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}
