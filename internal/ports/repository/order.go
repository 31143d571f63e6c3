package repository

import (
	"context"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
)

// IOrderRepo заказы и их позиции
type IOrderRepo interface {
	Create(ctx context.Context, order *domain.Order) error
	InsertItems(ctx context.Context, items []domain.OrderItem) error
	// Delete компенсирующее действие саги, позиции удаляются каскадом
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.OrderSummary, error)
	ListLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error)

	// MarkPaid pending→paid со штампом charge id; false - заказ уже не pending
	MarkPaid(ctx context.Context, id uuid.UUID, chargeID string) (bool, error)
	// UpdateStatus условный переход from→to; false - текущий статус не from
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error)
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error)
}

// ICartRepo корзина, используется только для очистки после оформления
type ICartRepo interface {
	DeleteItems(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (int64, error)
}

// IPromoRepo промокоды
type IPromoRepo interface {
	// GetActiveByCode точное совпадение кода среди активных; нет строки - ErrNotFound
	GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error)
}
