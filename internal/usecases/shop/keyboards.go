package shop

import (
	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
)

func (s *Service) openShopRow() []domain.InlineKeyboardButton {
	if s.webAppURL == "" {
		return nil
	}
	return []domain.InlineKeyboardButton{
		{Text: texts.ButtonOpenShop, WebApp: &domain.WebAppInfo{URL: s.webAppURL}},
	}
}

func (s *Service) mainMenuKeyboard() *domain.InlineKeyboardMarkup {
	rows := [][]domain.InlineKeyboardButton{
		{
			{Text: texts.ButtonEGE, CallbackData: texts.CallbackCategoryPrefix + domain.ExamEGE.Label()},
			{Text: texts.ButtonOGE, CallbackData: texts.CallbackCategoryPrefix + domain.ExamOGE.Label()},
		},
		{
			{Text: texts.ButtonMyOrders, CallbackData: texts.CallbackMyOrders},
			{Text: texts.ButtonPromo, CallbackData: texts.CallbackPromo},
		},
	}
	if row := s.openShopRow(); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []domain.InlineKeyboardButton{{Text: texts.ButtonClose, CallbackData: texts.CallbackClose}})
	return &domain.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// backKeyboard магазин и возврат в меню под экранами каталога, заказов и промокодов
func (s *Service) backKeyboard() *domain.InlineKeyboardMarkup {
	rows := make([][]domain.InlineKeyboardButton, 0, 2)
	if row := s.openShopRow(); row != nil {
		rows = append(rows, row)
	}
	rows = append(rows, []domain.InlineKeyboardButton{{Text: texts.ButtonBack, CallbackData: texts.CallbackBackToMenu}})
	return &domain.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func replyKeyboard() *domain.ReplyKeyboardMarkup {
	return &domain.ReplyKeyboardMarkup{
		Keyboard: [][]domain.KeyboardButton{
			{{Text: texts.ButtonEGE}, {Text: texts.ButtonOGE}},
			{{Text: texts.ButtonMyOrders}, {Text: texts.ButtonPromo}},
			{{Text: texts.ButtonHelp}},
		},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
}
