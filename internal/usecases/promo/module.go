package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
)

type Service struct {
	PromoRepo repository.IPromoRepo
	Log       *slog.Logger

	now func() time.Time
}

func New(promoRepo repository.IPromoRepo, log *slog.Logger) *Service {
	return &Service{
		PromoRepo: promoRepo,
		Log:       log,
		now:       time.Now,
	}
}

var _ usecase.IPromoUseCase = (*Service)(nil)

// Resolve только проверяет код, current_uses не меняется
func (s *Service) Resolve(ctx context.Context, code string) (*domain.PromoCheck, error) {
	normalized := domain.NormalizePromoCode(code)
	if normalized == "" {
		return &domain.PromoCheck{Status: domain.PromoNotFound}, nil
	}

	promo, err := s.PromoRepo.GetActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.PromoCheck{Status: domain.PromoNotFound, Code: normalized}, nil
		}
		return nil, fmt.Errorf("%w: lookup promo code: %v", domain.ErrPersistence, err)
	}

	check := promo.Check(s.now())
	s.Log.Debug("promo code resolved",
		"code", normalized,
		"status", check.Status)
	return &check, nil
}
