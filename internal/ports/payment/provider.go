package payment

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// IPaymentProvider платёжный провайдер. Use case зависит только от этого интерфейса
type IPaymentProvider interface {
	// CreateInvoiceLink возвращает ссылку на счёт, которую Mini App открывает через openInvoice
	CreateInvoiceLink(ctx context.Context, invoice domain.Invoice) (string, error)
	// ConfirmPreCheckout отвечает на pre_checkout_query. Должен укладываться в 10 секунд
	ConfirmPreCheckout(ctx context.Context, queryID string, decision domain.PreCheckoutDecision) error
}
