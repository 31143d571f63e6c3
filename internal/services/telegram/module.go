package telegram

import (
	"context"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	tgPort "github.com/admin/tg-bots/exam-shop-bot/internal/ports/telegram"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
)

// incoming то, что нужно обработчику из сообщения или callback
type incoming struct {
	target     domain.ReplyTarget
	telegramID int64
	firstName  string
}

type (
	// textRoute обработчик команды или кнопки reply-клавиатуры, args - текст после команды
	textRoute func(ctx context.Context, in incoming, args string) error
	// callbackRoute обработчик inline-кнопки, возвращает текст для answerCallbackQuery
	callbackRoute func(ctx context.Context, in incoming, arg string) (string, error)
)

type Service struct {
	Client         tgPort.IClient
	ShopUseCase    usecase.IShopUseCase
	PaymentUseCase usecase.IPaymentUseCase
	Log            *slog.Logger

	commands       map[string]textRoute
	labels         map[string]textRoute
	callbacks      map[string]callbackRoute
	callbackPrefix map[string]callbackRoute
}

// New создаёт сервис отправки и роутер обновлений. Таблицы роутинга строятся один раз здесь,
// use cases подставляются через SetUseCases, так как сами зависят от отправки сообщений
func New(client tgPort.IClient, log *slog.Logger) *Service {
	s := &Service{
		Client: client,
		Log:    log,
	}

	s.commands = map[string]textRoute{
		"start":  s.cmdStart,
		"orders": s.cmdOrders,
		"promo":  s.cmdPromo,
		"help":   s.cmdHelp,
		"menu":   s.cmdMenu,
	}
	s.labels = map[string]textRoute{
		texts.ButtonEGE:      s.labelCatalog(domain.ExamEGE),
		texts.ButtonOGE:      s.labelCatalog(domain.ExamOGE),
		texts.ButtonMyOrders: s.cmdOrders,
		texts.ButtonPromo:    s.labelPromoHelp,
		texts.ButtonHelp:     s.cmdHelp,
	}
	s.callbacks = map[string]callbackRoute{
		texts.CallbackMyOrders:   s.cbOrders,
		texts.CallbackPromo:      s.cbPromo,
		texts.CallbackBackToMenu: s.cbMenu,
		texts.CallbackClose:      s.cbClose,
	}
	s.callbackPrefix = map[string]callbackRoute{
		texts.CallbackCategoryPrefix: s.cbCategory,
	}

	return s
}

// SetUseCases подключает use cases после их создания
func (s *Service) SetUseCases(shop usecase.IShopUseCase, payment usecase.IPaymentUseCase) {
	s.ShopUseCase = shop
	s.PaymentUseCase = payment
}

var (
	_ service.IUpdateHandler   = (*Service)(nil)
	_ service.ITelegramService = (*Service)(nil)
)
