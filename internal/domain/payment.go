package domain

import (
	"time"

	"github.com/google/uuid"
)

// LabeledPrice позиция счёта, для Stars сумма в звёздах
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Invoice счёт на оплату заказа через Telegram Stars
type Invoice struct {
	OrderID     uuid.UUID
	Title       string
	Description string
	Payload     InvoicePayload
	Currency    string
	Prices      []LabeledPrice
}

// PreCheckoutDecision ответ на pre_checkout_query
type PreCheckoutDecision struct {
	OK     bool
	Reason string // текст для пользователя при отказе
}

// OrderEventType тип события жизненного цикла заказа
type OrderEventType string

const (
	OrderEventCreated   OrderEventType = "order.created"
	OrderEventPaid      OrderEventType = "order.paid"
	OrderEventDelivered OrderEventType = "order.delivered"
	OrderEventCancelled OrderEventType = "order.cancelled"
)

// OrderEvent событие, публикуемое во внешнюю шину
type OrderEvent struct {
	Type        OrderEventType `json:"type"`
	OrderID     uuid.UUID      `json:"order_id"`
	ProfileID   *uuid.UUID     `json:"profile_id,omitempty"`
	Status      OrderStatus    `json:"status"`
	TotalAmount *int64         `json:"total_amount,omitempty"`
	ChargeID    *string        `json:"telegram_payment_charge_id,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}
