package order

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

type MockCartRepo struct {
	mock.Mock
}

func (m *MockCartRepo) DeleteItems(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID, subjectIDs)
	return args.Get(0).(int64), args.Error(1)
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
