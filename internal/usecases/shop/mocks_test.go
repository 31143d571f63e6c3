package shop

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

type MockSubjectRepo struct {
	mock.Mock
}

func (m *MockSubjectRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Subject, error) {
	args := m.Called(ctx, ids)
	subjects, _ := args.Get(0).([]domain.Subject)
	return subjects, args.Error(1)
}

func (m *MockSubjectRepo) ListActiveByExam(ctx context.Context, exam domain.ExamType, limit int) ([]domain.Subject, error) {
	args := m.Called(ctx, exam, limit)
	subjects, _ := args.Get(0).([]domain.Subject)
	return subjects, args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	args := m.Called(ctx, profile)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	args := m.Called(ctx, telegramID)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Profile)
	return p, args.Error(1)
}

// MockOrderRepo покрывает только чтение истории, остальные методы не вызываются экраном заказов
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

type MockPromoUseCase struct {
	mock.Mock
}

func (m *MockPromoUseCase) Resolve(ctx context.Context, code string) (*domain.PromoCheck, error) {
	args := m.Called(ctx, code)
	check, _ := args.Get(0).(*domain.PromoCheck)
	return check, args.Error(1)
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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}
