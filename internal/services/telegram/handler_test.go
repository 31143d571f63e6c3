package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client  *MockClient
	shop    *MockShopUseCase
	payment *MockPaymentUseCase
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		client:  new(MockClient),
		shop:    new(MockShopUseCase),
		payment: new(MockPaymentUseCase),
	}
	f.svc = New(f.client, newNoopLogger())
	f.svc.SetUseCases(f.shop, f.payment)
	return f
}

func textUpdate(text string) *domain.Update {
	return &domain.Update{
		UpdateID: 1,
		Message: &domain.Message{
			MessageID: 10,
			From:      &domain.TelegramUser{ID: 42, FirstName: "Аня"},
			Chat:      &domain.Chat{ID: 100, Type: "private"},
			Text:      &text,
		},
	}
}

func callbackUpdate(data string) *domain.Update {
	return &domain.Update{
		UpdateID: 2,
		CallbackQuery: &domain.CallbackQuery{
			ID:   "cb-1",
			From: &domain.TelegramUser{ID: 42, FirstName: "Аня"},
			Message: &domain.Message{
				MessageID: 55,
				Chat:      &domain.Chat{ID: 100},
			},
			Data: &data,
		},
	}
}

var (
	chatTarget = domain.ReplyTarget{ChatID: 100}
	editTarget = domain.ReplyTarget{ChatID: 100, MessageID: 55}
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		text        string
		wantCommand string
		wantArgs    string
	}{
		{text: "/start", wantCommand: "start"},
		{text: "/start@ExamShopBot", wantCommand: "start"},
		{text: "/promo SALE10", wantCommand: "promo", wantArgs: "SALE10"},
		{text: "/Promo@ExamShopBot  sale10 extra", wantCommand: "promo", wantArgs: "sale10 extra"},
		{text: "/", wantCommand: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			command, args := ParseCommand(tt.text)
			assert.Equal(t, tt.wantCommand, command)
			assert.Equal(t, tt.wantArgs, args)
		})
	}

	assert.True(t, IsCommand("/help"))
	assert.False(t, IsCommand("help"))
	assert.False(t, IsCommand(""))
}

func TestHandleUpdate_Commands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		text  string
		setup func(f *fixture)
	}{
		{
			name: "start",
			text: "/start",
			setup: func(f *fixture) {
				f.shop.On("Welcome", ctx, int64(100), "Аня").Return(nil)
			},
		},
		{
			name: "orders",
			text: "/orders",
			setup: func(f *fixture) {
				f.shop.On("Orders", ctx, chatTarget, int64(42)).Return(nil)
			},
		},
		{
			name: "promo without code",
			text: "/promo",
			setup: func(f *fixture) {
				f.shop.On("PromoHelp", ctx, chatTarget).Return(nil)
			},
		},
		{
			name: "promo with code",
			text: "/promo sale10 please",
			setup: func(f *fixture) {
				f.shop.On("Promo", ctx, int64(100), "sale10").Return(nil)
			},
		},
		{
			name: "help",
			text: "/help",
			setup: func(f *fixture) {
				f.shop.On("Help", ctx, int64(100)).Return(nil)
			},
		},
		{
			name: "menu",
			text: "/menu",
			setup: func(f *fixture) {
				f.shop.On("ReplyKeyboard", ctx, int64(100)).Return(nil)
			},
		},
		{
			name: "my orders button",
			text: texts.ButtonMyOrders,
			setup: func(f *fixture) {
				f.shop.On("Orders", ctx, chatTarget, int64(42)).Return(nil)
			},
		},
		{
			name: "promo button",
			text: texts.ButtonPromo,
			setup: func(f *fixture) {
				f.shop.On("PromoHelp", ctx, chatTarget).Return(nil)
			},
		},
		{
			name: "help button",
			text: texts.ButtonHelp,
			setup: func(f *fixture) {
				f.shop.On("Help", ctx, int64(100)).Return(nil)
			},
		},
		{
			name: "ege button",
			text: texts.ButtonEGE,
			setup: func(f *fixture) {
				f.shop.On("Catalog", ctx, chatTarget, domain.ExamEGE).Return("", nil)
			},
		},
		{
			name: "bare promo code",
			text: "SALE10",
			setup: func(f *fixture) {
				f.shop.On("Promo", ctx, int64(100), "SALE10").Return(nil)
			},
		},
		{
			name:  "unknown command",
			text:  "/unknown",
			setup: func(f *fixture) {},
		},
		{
			name:  "free text",
			text:  "привет, как дела?",
			setup: func(f *fixture) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			err := f.svc.HandleUpdate(ctx, textUpdate(tt.text))
			require.NoError(t, err)
			f.shop.AssertExpectations(t)
			f.client.AssertNotCalled(t, "AnswerCallbackQuery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUpdate_CategoryButtonEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.shop.On("Catalog", ctx, chatTarget, domain.ExamOGE).Return(texts.CatalogEmpty, nil)
	f.client.On("SendMessage", ctx, int64(100), texts.CatalogEmpty, nil).Return(nil)

	require.NoError(t, f.svc.HandleUpdate(ctx, textUpdate(texts.ButtonOGE)))
	f.client.AssertExpectations(t)
}

func TestHandleUpdate_IgnoresBots(t *testing.T) {
	f := newFixture()
	update := textUpdate("/start")
	update.Message.From.IsBot = true

	require.NoError(t, f.svc.HandleUpdate(context.Background(), update))
	f.shop.AssertNotCalled(t, "Welcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleUpdate_TextPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dbErr := fmt.Errorf("%w: connection refused", domain.ErrPersistence)
	f.shop.On("Orders", ctx, chatTarget, int64(42)).Return(dbErr)
	f.shop.On("Failure", ctx, int64(100)).Return(nil)

	err := f.svc.HandleUpdate(ctx, textUpdate("/orders"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	f.shop.AssertExpectations(t)
}

func TestHandleUpdate_TextBotAPIFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.shop.On("Help", ctx, int64(100)).Return(errors.New("telegram api error: 403"))

	require.NoError(t, f.svc.HandleUpdate(ctx, textUpdate("/help")))
	f.shop.AssertNotCalled(t, "Failure", mock.Anything, mock.Anything)
}

func TestHandleUpdate_Callbacks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		data       string
		setup      func(f *fixture)
		wantAnswer string
	}{
		{
			name: "category in cyrillic",
			data: "category_ЕГЭ",
			setup: func(f *fixture) {
				f.shop.On("Catalog", ctx, editTarget, domain.ExamEGE).Return("", nil)
			},
		},
		{
			name: "empty category",
			data: "category_OGE",
			setup: func(f *fixture) {
				f.shop.On("Catalog", ctx, editTarget, domain.ExamOGE).Return(texts.CatalogEmpty, nil)
			},
			wantAnswer: texts.CatalogEmpty,
		},
		{
			name:       "unknown category",
			data:       "category_ВУЗ",
			setup:      func(f *fixture) {},
			wantAnswer: texts.CatalogEmpty,
		},
		{
			name: "my orders",
			data: texts.CallbackMyOrders,
			setup: func(f *fixture) {
				f.shop.On("Orders", ctx, editTarget, int64(42)).Return(nil)
			},
		},
		{
			name: "promo",
			data: texts.CallbackPromo,
			setup: func(f *fixture) {
				f.shop.On("PromoHelp", ctx, editTarget).Return(nil)
			},
		},
		{
			name: "back to menu",
			data: texts.CallbackBackToMenu,
			setup: func(f *fixture) {
				f.shop.On("MainMenu", ctx, editTarget).Return(nil)
			},
		},
		{
			name: "close",
			data: texts.CallbackClose,
			setup: func(f *fixture) {
				f.shop.On("Close", ctx, editTarget).Return(nil)
			},
		},
		{
			name:  "unknown data",
			data:  "something_else",
			setup: func(f *fixture) {},
		},
		{
			name: "bot api error is still answered",
			data: texts.CallbackBackToMenu,
			setup: func(f *fixture) {
				f.shop.On("MainMenu", ctx, editTarget).Return(errors.New("message is not modified"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			f.client.On("AnswerCallbackQuery", ctx, "cb-1", tt.wantAnswer, false).Return(nil).Once()

			err := f.svc.HandleUpdate(ctx, callbackUpdate(tt.data))
			require.NoError(t, err)
			f.shop.AssertExpectations(t)
			f.client.AssertExpectations(t)
			f.client.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
		})
	}
}

func TestHandleUpdate_CallbackPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	dbErr := fmt.Errorf("%w: timeout", domain.ErrPersistence)
	f.shop.On("Orders", ctx, editTarget, int64(42)).Return(dbErr)
	f.client.On("AnswerCallbackQuery", ctx, "cb-1", texts.Failure, false).Return(nil).Once()

	err := f.svc.HandleUpdate(ctx, callbackUpdate(texts.CallbackMyOrders))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	f.client.AssertNumberOfCalls(t, "AnswerCallbackQuery", 1)
}

func TestHandleUpdate_CallbackWithoutMessage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	update := callbackUpdate(texts.CallbackMyOrders)
	update.CallbackQuery.Message = nil
	f.client.On("AnswerCallbackQuery", ctx, "cb-1", "", false).Return(nil).Once()

	require.NoError(t, f.svc.HandleUpdate(ctx, update))
	f.shop.AssertNotCalled(t, "Orders", mock.Anything, mock.Anything, mock.Anything)
	f.client.AssertExpectations(t)
}

func TestHandleUpdate_Payments(t *testing.T) {
	ctx := context.Background()

	t.Run("pre checkout", func(t *testing.T) {
		f := newFixture()
		query := &domain.PreCheckoutQuery{ID: "pcq-1", Currency: domain.CurrencyStars, TotalAmount: 150}
		f.payment.On("HandlePreCheckout", ctx, query).Return(nil)

		require.NoError(t, f.svc.HandleUpdate(ctx, &domain.Update{UpdateID: 3, PreCheckoutQuery: query}))
		f.payment.AssertExpectations(t)
	})

	t.Run("successful payment", func(t *testing.T) {
		f := newFixture()
		paid := &domain.SuccessfulPayment{Currency: domain.CurrencyStars, TotalAmount: 150, TelegramPaymentChargeID: "ch-1"}
		f.payment.On("HandleSuccessfulPayment", ctx, int64(100), paid).Return(nil)

		update := &domain.Update{UpdateID: 4, Message: &domain.Message{
			MessageID:         11,
			Chat:              &domain.Chat{ID: 100},
			SuccessfulPayment: paid,
		}}
		require.NoError(t, f.svc.HandleUpdate(ctx, update))
		f.payment.AssertExpectations(t)
	})

	t.Run("persistence error is returned", func(t *testing.T) {
		f := newFixture()
		paid := &domain.SuccessfulPayment{TelegramPaymentChargeID: "ch-2"}
		f.payment.On("HandleSuccessfulPayment", ctx, int64(100), paid).
			Return(fmt.Errorf("%w: mark paid", domain.ErrPersistence))

		update := &domain.Update{Message: &domain.Message{Chat: &domain.Chat{ID: 100}, SuccessfulPayment: paid}}
		assert.ErrorIs(t, f.svc.HandleUpdate(ctx, update), domain.ErrPersistence)
	})
}

func TestHandleUpdate_Unrecognized(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.HandleUpdate(context.Background(), &domain.Update{UpdateID: 5}))
	require.NoError(t, f.svc.HandleUpdate(context.Background(), nil))
}
