package subjectRepo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/persistence"
	ports "github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type subjectColumns struct {
	TableName     string
	ID            string
	Title         string
	Description   string
	ExamType      string
	Price         string
	OriginalPrice string
	Icon          string
	IsActive      string
	IsPopular     string
	DemoContent   string
	FullContent   string
	ContentKey    string
	CreatedAt     string
	UpdatedAt     string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns subjectColumns
}

// New создаёт репозиторий каталога предметов
func New(db persistence.Persistence, log *slog.Logger) ports.ISubjectRepo {
	cols := subjectColumns{
		TableName:     "subjects",
		ID:            "id",
		Title:         "title",
		Description:   "description",
		ExamType:      "exam_type",
		Price:         "price",
		OriginalPrice: "original_price",
		Icon:          "icon",
		IsActive:      "is_active",
		IsPopular:     "is_popular",
		DemoContent:   "demo_content",
		FullContent:   "full_content",
		ContentKey:    "content_key",
		CreatedAt:     "created_at",
		UpdatedAt:     "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (14 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Title,
		r.columns.Description,
		r.columns.ExamType,
		r.columns.Price,
		r.columns.OriginalPrice,
		r.columns.Icon,
		r.columns.IsActive,
		r.columns.IsPopular,
		r.columns.DemoContent,
		r.columns.FullContent,
		r.columns.ContentKey,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// GetByIDs возвращает предметы по списку id, неизвестные id пропускаются
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`SELECT %s FROM %s WHERE %s IN (?)`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ID), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build subjects query: %w", err)
	}

	var subjects []domain.Subject
	if err := r.db.Select(ctx, &subjects, r.db.Rebind(query), args...); err != nil {
		r.Log.Error("failed to get subjects by ids",
			"error", err,
			"ids_count", len(ids))
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}

	r.Log.Debug("subjects retrieved",
		"requested", len(ids),
		"found", len(subjects))
	return subjects, nil
}

// ListActiveByExam активные предметы категории, сначала популярные
func (r *Repository) ListActiveByExam(ctx context.Context, exam domain.ExamType, limit int) ([]domain.Subject, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = TRUE ORDER BY %s DESC, %s LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.ExamType,
		r.columns.IsActive,
		r.columns.IsPopular,
		r.columns.Title)

	var subjects []domain.Subject
	if err := r.db.Select(ctx, &subjects, query, string(exam), limit); err != nil {
		r.Log.Error("failed to list subjects",
			"error", err,
			"exam_type", exam)
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}

	return subjects, nil
}
