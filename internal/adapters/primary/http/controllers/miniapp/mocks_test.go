package miniapp

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

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, initData string) (*domain.AuthResult, error) {
	args := m.Called(ctx, initData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (*domain.CreatedOrder, error) {
	args := m.Called(ctx, profileID, subjectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreatedOrder), args.Error(1)
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

type MockPromoUseCase struct {
	mock.Mock
}

func (m *MockPromoUseCase) Resolve(ctx context.Context, code string) (*domain.PromoCheck, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoCheck), args.Error(1)
}
