package promoRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
)

type promoColumns struct {
	TableName       string
	ID              string
	Code            string
	DiscountPercent string
	MaxUses         string
	CurrentUses     string
	IsActive        string
	ExpiresAt       string
	CreatedAt       string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns promoColumns
}

// New создаёт репозиторий промокодов
func New(db persistence.Persistence, log *slog.Logger) ports.IPromoRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: promoColumns{
			TableName:       "promo_codes",
			ID:              "id",
			Code:            "code",
			DiscountPercent: "discount_percent",
			MaxUses:         "max_uses",
			CurrentUses:     "current_uses",
			IsActive:        "is_active",
			ExpiresAt:       "expires_at",
			CreatedAt:       "created_at",
		},
	}
}

// GetActiveByCode ищет активный промокод, code уже должен быть нормализован
func (r *Repository) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = TRUE`,
		r.columns.ID,
		r.columns.Code,
		r.columns.DiscountPercent,
		r.columns.MaxUses,
		r.columns.CurrentUses,
		r.columns.IsActive,
		r.columns.ExpiresAt,
		r.columns.CreatedAt,
		r.columns.TableName,
		r.columns.Code,
		r.columns.IsActive)

	var promo domain.PromoCode
	if err := r.db.Get(ctx, &promo, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("promo code %q: %w", code, domain.ErrNotFound)
		}
		r.Log.Error("failed to get promo code",
			"error", err,
			"code", code)
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &promo, nil
}
