package promo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPromoRepo struct {
	mock.Mock
}

func (m *MockPromoRepo) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	args := m.Called(ctx, code)
	promo, _ := args.Get(0).(*domain.PromoCode)
	return promo, args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestService_Resolve(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name       string
		input      string
		lookup     string
		promo      *domain.PromoCode
		repoErr    error
		wantStatus domain.PromoStatus
		wantPct    int
	}{
		{
			name:       "valid, normalized",
			input:      "  discount10 ",
			lookup:     "DISCOUNT10",
			promo:      &domain.PromoCode{Code: "DISCOUNT10", DiscountPercent: 10, IsActive: true, ExpiresAt: &future},
			wantStatus: domain.PromoValid,
			wantPct:    10,
		},
		{
			name:       "exhausted wins over expired",
			input:      "OLD",
			lookup:     "OLD",
			promo:      &domain.PromoCode{Code: "OLD", DiscountPercent: 5, IsActive: true, MaxUses: intPtr(3), CurrentUses: 3, ExpiresAt: &past},
			wantStatus: domain.PromoExhausted,
		},
		{
			name:       "expired",
			input:      "SPRING",
			lookup:     "SPRING",
			promo:      &domain.PromoCode{Code: "SPRING", DiscountPercent: 5, IsActive: true, MaxUses: intPtr(3), CurrentUses: 2, ExpiresAt: &past},
			wantStatus: domain.PromoExpired,
		},
		{
			name:       "not found",
			input:      "NOPE",
			lookup:     "NOPE",
			repoErr:    fmt.Errorf("promo code: %w", domain.ErrNotFound),
			wantStatus: domain.PromoNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPromoRepo)
			svc := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
			svc.now = func() time.Time { return now }

			repo.On("GetActiveByCode", mock.Anything, tt.lookup).Return(tt.promo, tt.repoErr).Once()

			check, err := svc.Resolve(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, check.Status)
			assert.Equal(t, tt.wantPct, check.DiscountPercent)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Resolve_StoreError(t *testing.T) {
	repo := new(MockPromoRepo)
	svc := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	repo.On("GetActiveByCode", mock.Anything, "CODE").Return(nil, errors.New("db down")).Once()

	_, err := svc.Resolve(context.Background(), "code")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestService_Resolve_Blank(t *testing.T) {
	repo := new(MockPromoRepo)
	svc := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	check, err := svc.Resolve(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, domain.PromoNotFound, check.Status)
	repo.AssertNotCalled(t, "GetActiveByCode", mock.Anything, mock.Anything)
}
