package telegram

import (
	"context"
	"fmt"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// CreateInvoiceLinkRequest запрос createInvoiceLink (для Telegram Stars provider_token пустой)
// Документация: https://core.telegram.org/bots/api#createinvoicelink
type CreateInvoiceLinkRequest struct {
	Title         string                `json:"title"`       // 1-32 символа
	Description   string                `json:"description"` // 1-255 символов
	Payload       string                `json:"payload"`     // {"orderId": "..."}
	ProviderToken string                `json:"provider_token,omitempty"`
	Currency      string                `json:"currency"` // "XTR" для Stars
	Prices        []domain.LabeledPrice `json:"prices"`
	PhotoURL      *string               `json:"photo_url,omitempty"`
}

// AnswerPreCheckoutQueryRequest запрос на ответ pre_checkout_query
type AnswerPreCheckoutQueryRequest struct {
	PreCheckoutQueryID string  `json:"pre_checkout_query_id"`
	OK                 bool    `json:"ok"`                      // true - подтвердить, false - отклонить
	ErrorMessage       *string `json:"error_message,omitempty"` // сообщение для пользователя (если ok=false)
}

// CreateInvoiceLink возвращает ссылку на счёт для WebApp.openInvoice
func (c *Client) CreateInvoiceLink(ctx context.Context, req CreateInvoiceLinkRequest) (string, error) {
	var link string
	if err := c.call(ctx, "createInvoiceLink", req, &link); err != nil {
		return "", fmt.Errorf("create invoice link: %w", err)
	}

	c.log.Debug("invoice link created", "payload", req.Payload)
	return link, nil
}

// AnswerPreCheckoutQuery подтверждает или отклоняет платёж
// Документация: https://core.telegram.org/bots/api#answerprecheckoutquery
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage *string) error {
	req := AnswerPreCheckoutQueryRequest{
		PreCheckoutQueryID: queryID,
		OK:                 ok,
		ErrorMessage:       errorMessage,
	}

	if err := c.call(ctx, "answerPreCheckoutQuery", req, nil); err != nil {
		return fmt.Errorf("answer pre_checkout_query [query_id=%s]: %w", queryID, err)
	}

	c.log.Debug("pre_checkout_query answered successfully",
		"query_id", queryID,
		"ok", ok,
	)
	return nil
}
