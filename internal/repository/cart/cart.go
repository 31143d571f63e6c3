package cartRepo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type cartColumns struct {
	TableName string
	ProfileID string
	SubjectID string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns cartColumns
}

// New создаёт репозиторий корзины
func New(db persistence.Persistence, log *slog.Logger) ports.ICartRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: cartColumns{
			TableName: "cart_items",
			ProfileID: "profile_id",
			SubjectID: "subject_id",
		},
	}
}

// DeleteItems убирает из корзины профиля купленные предметы
func (r *Repository) DeleteItems(ctx context.Context, profileID uuid.UUID, subjectIDs []uuid.UUID) (int64, error) {
	if len(subjectIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s IN (?)`,
		r.columns.TableName,
		r.columns.ProfileID,
		r.columns.SubjectID), profileID, subjectIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to build cart query: %w", err)
	}

	deleted, err := r.db.ExecWithResult(ctx, r.db.Rebind(query), args...)
	if err != nil {
		r.Log.Error("failed to clear cart",
			"error", err,
			"profile_id", profileID)
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	r.Log.Debug("cart items removed",
		"profile_id", profileID,
		"deleted", deleted)
	return deleted, nil
}
