package telegram_stars

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	paymentPort "github.com/admin/tg-bots/exam-shop-bot/internal/ports/payment"
)

// лимиты Bot API на поля счёта
const (
	maxTitleRunes       = 32
	maxDescriptionRunes = 255
)

// invoiceAPI методы Bot API, через которые проходит оплата звёздами
type invoiceAPI interface {
	CreateInvoiceLink(ctx context.Context, req telegram.CreateInvoiceLinkRequest) (string, error)
	AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error
}

// Provider реализует IPaymentProvider для Telegram Stars
type Provider struct {
	client invoiceAPI
	log    *slog.Logger
}

var _ paymentPort.IPaymentProvider = (*Provider)(nil)

func NewProvider(client invoiceAPI, log *slog.Logger) *Provider {
	return &Provider{
		client: client,
		log:    log,
	}
}

// CreateInvoiceLink создаёт ссылку на счёт в звёздах. provider_token для XTR не передаётся
func (p *Provider) CreateInvoiceLink(ctx context.Context, invoice domain.Invoice) (string, error) {
	if invoice.Currency != "" && invoice.Currency != domain.CurrencyStars {
		return "", fmt.Errorf("%w: unsupported currency %s", domain.ErrValidation, invoice.Currency)
	}
	if len(invoice.Prices) == 0 {
		return "", fmt.Errorf("%w: invoice has no prices", domain.ErrValidation)
	}

	req := telegram.CreateInvoiceLinkRequest{
		Title:       truncateRunes(invoice.Title, maxTitleRunes),
		Description: truncateRunes(invoice.Description, maxDescriptionRunes),
		Payload:     invoice.Payload.Encode(),
		Currency:    domain.CurrencyStars,
		Prices:      invoice.Prices,
	}

	link, err := p.client.CreateInvoiceLink(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create invoice link [order_id=%s]: %w", invoice.OrderID, err)
	}

	p.log.Debug("stars invoice link created", "order_id", invoice.OrderID)
	return link, nil
}

// ConfirmPreCheckout подтверждает или отклоняет pre_checkout_query
func (p *Provider) ConfirmPreCheckout(ctx context.Context, queryID string, decision domain.PreCheckoutDecision) error {
	var reason *string
	if !decision.OK {
		r := decision.Reason
		reason = &r
	}

	if err := p.client.AnswerPreCheckoutQuery(ctx, queryID, decision.OK, reason); err != nil {
		return fmt.Errorf("failed to answer pre_checkout_query: %w", err)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
