package usecase

import (
	"context"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
)

// IPaymentUseCase машина состояний оплаты заказа
type IPaymentUseCase interface {
	HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error
	HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error
	CreateInvoiceLink(ctx context.Context, orderID, profileID uuid.UUID) (string, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) error
	CancelStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// IOrderUseCase оформление заказа
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (*domain.CreatedOrder, error)
}

// IPromoUseCase проверка промокода
type IPromoUseCase interface {
	Resolve(ctx context.Context, code string) (*domain.PromoCheck, error)
}

// IAuthUseCase обмен initData на профиль и токен
type IAuthUseCase interface {
	Authenticate(ctx context.Context, initData string) (*domain.AuthResult, error)
}

// IShopUseCase экраны бота. target.MessageID != 0 - редактирование сообщения на месте
type IShopUseCase interface {
	Welcome(ctx context.Context, chatID int64, firstName string) error
	MainMenu(ctx context.Context, target domain.ReplyTarget) error
	ReplyKeyboard(ctx context.Context, chatID int64) error
	// Catalog возвращает текст для answerCallbackQuery, когда показывать нечего
	Catalog(ctx context.Context, target domain.ReplyTarget, exam domain.ExamType) (string, error)
	Orders(ctx context.Context, target domain.ReplyTarget, telegramID int64) error
	PromoHelp(ctx context.Context, target domain.ReplyTarget) error
	Promo(ctx context.Context, chatID int64, code string) error
	Help(ctx context.Context, chatID int64) error
	Close(ctx context.Context, target domain.ReplyTarget) error
	// Failure короткое сообщение об ошибке без подробностей
	Failure(ctx context.Context, chatID int64) error
}
