package profileRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/google/uuid"
)

type profileColumns struct {
	TableName  string
	ID         string
	TelegramID string
	Username   string
	FirstName  string
	LastName   string
	PhotoURL   string
	IsBlocked  string
	IsAdmin    string
	CreatedAt  string
	UpdatedAt  string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns profileColumns
}

// New создаёт репозиторий профилей покупателей
func New(db persistence.Persistence, log *slog.Logger) ports.IProfileRepo {
	cols := profileColumns{
		TableName:  "profiles",
		ID:         "id",
		TelegramID: "telegram_id",
		Username:   "username",
		FirstName:  "first_name",
		LastName:   "last_name",
		PhotoURL:   "photo_url",
		IsBlocked:  "is_blocked",
		IsAdmin:    "is_admin",
		CreatedAt:  "created_at",
		UpdatedAt:  "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (10 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.TelegramID,
		r.columns.Username,
		r.columns.FirstName,
		r.columns.LastName,
		r.columns.PhotoURL,
		r.columns.IsBlocked,
		r.columns.IsAdmin,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Upsert создаёт профиль или обновляет данные из Telegram у существующего.
// Флаги is_blocked и is_admin при обновлении не трогаются
func (r *Repository) Upsert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
		RETURNING %s`,
		r.columns.TableName,
		r.columns.TelegramID, r.columns.Username, r.columns.FirstName, r.columns.LastName, r.columns.PhotoURL,
		r.columns.TelegramID,
		r.columns.Username, r.columns.Username,
		r.columns.FirstName, r.columns.FirstName,
		r.columns.LastName, r.columns.LastName,
		r.columns.PhotoURL, r.columns.PhotoURL,
		r.columns.UpdatedAt,
		r.allColumns())

	var stored domain.Profile
	err := r.db.Get(ctx, &stored, query,
		profile.TelegramID,
		profile.Username,
		profile.FirstName,
		profile.LastName,
		profile.PhotoURL)
	if err != nil {
		r.Log.Error("failed to upsert profile",
			"error", err,
			"telegram_id", profile.TelegramID)
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.Log.Debug("profile upserted",
		"id", stored.ID,
		"telegram_id", stored.TelegramID)
	return &stored, nil
}

// GetByTelegramID получает профиль по Telegram ID
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	return r.getBy(ctx, r.columns.TelegramID, telegramID)
}

// GetByID получает профиль по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return r.getBy(ctx, r.columns.ID, id)
}

func (r *Repository) getBy(ctx context.Context, column string, value interface{}) (*domain.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		column)

	var profile domain.Profile
	if err := r.db.Get(ctx, &profile, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s=%v: %w", column, value, domain.ErrNotFound)
		}
		r.Log.Error("failed to get profile",
			"error", err,
			column, value)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}
