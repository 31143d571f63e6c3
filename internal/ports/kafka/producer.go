package kafka

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
)

// IOrderEventProducer публикует события жизненного цикла заказа
type IOrderEventProducer interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
	Close() error
}
