package telegram

import (
	"context"
	"strings"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
)

func (s *Service) cmdStart(ctx context.Context, in incoming, _ string) error {
	return s.ShopUseCase.Welcome(ctx, in.target.ChatID, in.firstName)
}

func (s *Service) cmdOrders(ctx context.Context, in incoming, _ string) error {
	return s.ShopUseCase.Orders(ctx, in.target, in.telegramID)
}

// cmdPromo "/promo" без кода показывает подсказку, с кодом - проверяет первое слово
func (s *Service) cmdPromo(ctx context.Context, in incoming, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return s.ShopUseCase.PromoHelp(ctx, in.target)
	}
	return s.ShopUseCase.Promo(ctx, in.target.ChatID, fields[0])
}

func (s *Service) cmdHelp(ctx context.Context, in incoming, _ string) error {
	return s.ShopUseCase.Help(ctx, in.target.ChatID)
}

func (s *Service) cmdMenu(ctx context.Context, in incoming, _ string) error {
	return s.ShopUseCase.ReplyKeyboard(ctx, in.target.ChatID)
}

func (s *Service) labelPromoHelp(ctx context.Context, in incoming, _ string) error {
	return s.ShopUseCase.PromoHelp(ctx, in.target)
}

// labelCatalog кнопка категории на reply-клавиатуре: ответа на callback нет, пустую категорию сообщаем текстом
func (s *Service) labelCatalog(exam domain.ExamType) textRoute {
	return func(ctx context.Context, in incoming, _ string) error {
		notice, err := s.ShopUseCase.Catalog(ctx, in.target, exam)
		if err != nil || notice == "" {
			return err
		}
		return s.SendMessage(ctx, in.target.ChatID, notice, nil)
	}
}

func (s *Service) cbCategory(ctx context.Context, in incoming, arg string) (string, error) {
	exam, ok := domain.ParseExamType(arg)
	if !ok {
		return texts.CatalogEmpty, nil
	}
	return s.ShopUseCase.Catalog(ctx, in.target, exam)
}

func (s *Service) cbOrders(ctx context.Context, in incoming, _ string) (string, error) {
	return "", s.ShopUseCase.Orders(ctx, in.target, in.telegramID)
}

func (s *Service) cbPromo(ctx context.Context, in incoming, _ string) (string, error) {
	return "", s.ShopUseCase.PromoHelp(ctx, in.target)
}

func (s *Service) cbMenu(ctx context.Context, in incoming, _ string) (string, error) {
	return "", s.ShopUseCase.MainMenu(ctx, in.target)
}

func (s *Service) cbClose(ctx context.Context, in incoming, _ string) (string, error) {
	return "", s.ShopUseCase.Close(ctx, in.target)
}
