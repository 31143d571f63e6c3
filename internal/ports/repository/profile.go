package repository

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
)

// IProfileRepo профили покупателей
type IProfileRepo interface {
	// Upsert создаёт или обновляет профиль по telegram_id и возвращает актуальную строку
	Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}
