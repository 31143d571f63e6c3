package payment

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

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepo) InsertItems(ctx context.Context, items []domain.OrderItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*domain.Order)
	return order, args.Error(1)
}

func (m *MockOrderRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.OrderSummary, error) {
	args := m.Called(ctx, profileID, limit)
	orders, _ := args.Get(0).([]domain.OrderSummary)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) ListLines(ctx context.Context, orderID uuid.UUID) ([]domain.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]domain.OrderLine)
	return lines, args.Error(1)
}

func (m *MockOrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, chargeID string) (bool, error) {
	args := m.Called(ctx, id, chargeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, createdBefore, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockProducer) Close() error {
	return m.Called().Error(0)
}

type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) SendAlert(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateInvoiceLink(ctx context.Context, invoice domain.Invoice) (string, error) {
	args := m.Called(ctx, invoice)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ConfirmPreCheckout(ctx context.Context, queryID string, decision domain.PreCheckoutDecision) error {
	return m.Called(ctx, queryID, decision).Error(0)
}

type MockTelegramService struct {
	mock.Mock
}

func (m *MockTelegramService) SendMessage(ctx context.Context, chatID int64, text string, markup domain.ReplyMarkup) error {
	return m.Called(ctx, chatID, text, markup).Error(0)
}

func (m *MockTelegramService) Reply(ctx context.Context, target domain.ReplyTarget, text string, keyboard *domain.InlineKeyboardMarkup) error {
	return m.Called(ctx, target, text, keyboard).Error(0)
}

func (m *MockTelegramService) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return m.Called(ctx, chatID, messageID).Error(0)
}

func (m *MockTelegramService) AnswerCallbackQuery(ctx context.Context, callbackID, text string) error {
	return m.Called(ctx, callbackID, text).Error(0)
}

type MockContentStorage struct {
	mock.Mock
}

func (m *MockContentStorage) GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}
