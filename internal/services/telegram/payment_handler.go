package telegram

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// HandlePreCheckoutQuery обрабатывает pre_checkout_query от Telegram (для платежей Stars)
func (s *Service) HandlePreCheckoutQuery(ctx context.Context, query *domain.PreCheckoutQuery) error {
	if query == nil {
		s.Log.Error("pre_checkout_query is nil")
		return fmt.Errorf("invalid pre_checkout_query")
	}

	if s.PaymentUseCase == nil {
		s.Log.Warn("payment use case not configured, ignoring pre_checkout_query",
			"query_id", query.ID,
		)
		return fmt.Errorf("payment use case not configured")
	}

	if err := s.PaymentUseCase.HandlePreCheckout(ctx, query); err != nil {
		return fmt.Errorf("failed to handle pre_checkout_query: %w", err)
	}
	return nil
}

// HandleSuccessfulPayment передаёт уведомление об оплате в машину состояний заказа
func (s *Service) HandleSuccessfulPayment(ctx context.Context, message *domain.Message) error {
	if message == nil || message.SuccessfulPayment == nil || message.Chat == nil {
		return fmt.Errorf("invalid successful_payment message")
	}

	if s.PaymentUseCase == nil {
		s.Log.Error("payment use case not configured, successful_payment dropped",
			"charge_id", message.SuccessfulPayment.TelegramPaymentChargeID,
		)
		return fmt.Errorf("payment use case not configured")
	}

	s.Log.Info("successful payment received",
		"chat_id", message.Chat.ID,
		"amount", message.SuccessfulPayment.TotalAmount,
		"currency", message.SuccessfulPayment.Currency,
	)

	if err := s.PaymentUseCase.HandleSuccessfulPayment(ctx, message.Chat.ID, message.SuccessfulPayment); err != nil {
		return fmt.Errorf("failed to handle successful_payment: %w", err)
	}
	return nil
}
