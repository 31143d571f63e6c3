package repository

import (
	"context"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/google/uuid"
)

// ISubjectRepo чтение каталога
type ISubjectRepo interface {
	// GetByIDs возвращает найденные предметы, отсутствующие id молча пропускаются
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Subject, error)
	ListActiveByExam(ctx context.Context, exam domain.ExamType, limit int) ([]domain.Subject, error)
}
