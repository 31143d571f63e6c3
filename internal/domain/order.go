package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // создан, ожидает оплаты
	OrderStatusPaid      OrderStatus = "paid"      // оплата получена, материалы ещё не подтверждены
	OrderStatusDelivered OrderStatus = "delivered" // материалы отправлены
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusDelivered},
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal delivered и cancelled не имеют исходящих переходов
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo только прямые переходы вперёд: pending→paid→delivered, pending→cancelled
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order заказ, сумма в звёздах
type Order struct {
	ID                      uuid.UUID   `json:"id" db:"id"`
	ProfileID               uuid.UUID   `json:"profile_id" db:"profile_id"`
	TotalAmount             int64       `json:"total_amount" db:"total_amount"`
	Status                  OrderStatus `json:"status" db:"status"`
	TelegramPaymentChargeID *string     `json:"telegram_payment_charge_id,omitempty" db:"telegram_payment_charge_id"`
	CreatedAt               time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem позиция заказа, цена фиксируется в момент создания заказа
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	SubjectID uuid.UUID `json:"subject_id" db:"subject_id"`
	Price     int64     `json:"price" db:"price"`
}

// CreatedOrder результат оформления заказа
type CreatedOrder struct {
	Order    Order
	Items    []OrderItem
	Subjects []Subject
}

// OrderSummary заказ с названиями купленных предметов (для истории в чате)
type OrderSummary struct {
	Order
	Titles []string
}

// OrderLine позиция заказа вместе с материалами предмета (для выдачи после оплаты)
type OrderLine struct {
	OrderID     uuid.UUID `db:"order_id"`
	SubjectID   uuid.UUID `db:"subject_id"`
	Title       string    `db:"title"`
	Price       int64     `db:"price"`
	FullContent *string   `db:"full_content"`
	ContentKey  *string   `db:"content_key"`
}

// HasContent есть ли что отправлять покупателю
func (l OrderLine) HasContent() bool {
	return (l.FullContent != nil && *l.FullContent != "") || (l.ContentKey != nil && *l.ContentKey != "")
}

// OrderSagaState шаги оформления заказа с единственной компенсацией (удаление заказа)
type OrderSagaState int

const (
	SagaStarted OrderSagaState = iota
	SagaCreated
	SagaItemsInserted
	SagaCommitted
	SagaRollingBack
	SagaRolledBack
	SagaRollbackFailed
)

var sagaTransitions = map[OrderSagaState][]OrderSagaState{
	SagaStarted:       {SagaCreated},
	SagaCreated:       {SagaItemsInserted, SagaRollingBack},
	SagaItemsInserted: {SagaCommitted},
	SagaRollingBack:   {SagaRolledBack, SagaRollbackFailed},
}

func (s OrderSagaState) String() string {
	switch s {
	case SagaStarted:
		return "started"
	case SagaCreated:
		return "created"
	case SagaItemsInserted:
		return "items_inserted"
	case SagaCommitted:
		return "committed"
	case SagaRollingBack:
		return "rolling_back"
	case SagaRolledBack:
		return "rolled_back"
	case SagaRollbackFailed:
		return "rollback_failed"
	default:
		return "unknown"
	}
}

// CanAdvanceTo допустимые шаги саги
func (s OrderSagaState) CanAdvanceTo(next OrderSagaState) bool {
	for _, allowed := range sagaTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
