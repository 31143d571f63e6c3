package telegram

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockClient struct {
	mock.Mock
}

func (m *MockClient) SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error {
	return m.Called(ctx, chatID, text, markup).Error(0)
}

func (m *MockClient) EditMessageText(ctx context.Context, chatID, messageID int64, text string, markup *domain.InlineKeyboardMarkup) error {
	return m.Called(ctx, chatID, messageID, text, markup).Error(0)
}

func (m *MockClient) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return m.Called(ctx, chatID, messageID).Error(0)
}

func (m *MockClient) AnswerCallbackQuery(ctx context.Context, callbackID string, text string, showAlert bool) error {
	return m.Called(ctx, callbackID, text, showAlert).Error(0)
}

type MockShopUseCase struct {
	mock.Mock
}

func (m *MockShopUseCase) Welcome(ctx context.Context, chatID int64, firstName string) error {
	return m.Called(ctx, chatID, firstName).Error(0)
}

func (m *MockShopUseCase) MainMenu(ctx context.Context, target domain.ReplyTarget) error {
	return m.Called(ctx, target).Error(0)
}

func (m *MockShopUseCase) ReplyKeyboard(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *MockShopUseCase) Catalog(ctx context.Context, target domain.ReplyTarget, exam domain.ExamType) (string, error) {
	args := m.Called(ctx, target, exam)
	return args.String(0), args.Error(1)
}

func (m *MockShopUseCase) Orders(ctx context.Context, target domain.ReplyTarget, telegramID int64) error {
	return m.Called(ctx, target, telegramID).Error(0)
}

func (m *MockShopUseCase) PromoHelp(ctx context.Context, target domain.ReplyTarget) error {
	return m.Called(ctx, target).Error(0)
}

func (m *MockShopUseCase) Promo(ctx context.Context, chatID int64, code string) error {
	return m.Called(ctx, chatID, code).Error(0)
}

func (m *MockShopUseCase) Help(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

func (m *MockShopUseCase) Close(ctx context.Context, target domain.ReplyTarget) error {
	return m.Called(ctx, target).Error(0)
}

func (m *MockShopUseCase) Failure(ctx context.Context, chatID int64) error {
	return m.Called(ctx, chatID).Error(0)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) HandlePreCheckout(ctx context.Context, query *domain.PreCheckoutQuery) error {
	return m.Called(ctx, query).Error(0)
}

func (m *MockPaymentUseCase) HandleSuccessfulPayment(ctx context.Context, chatID int64, payment *domain.SuccessfulPayment) error {
	return m.Called(ctx, chatID, payment).Error(0)
}

func (m *MockPaymentUseCase) CreateInvoiceLink(ctx context.Context, orderID, profileID uuid.UUID) (string, error) {
	args := m.Called(ctx, orderID, profileID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentUseCase) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return m.Called(ctx, orderID).Error(0)
}

func (m *MockPaymentUseCase) CancelStale(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}
