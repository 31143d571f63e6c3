package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExamType категория экзамена
type ExamType string

const (
	ExamEGE ExamType = "EGE"
	ExamOGE ExamType = "OGE"
)

// ParseExamType принимает как латинское (EGE), так и кириллическое (ЕГЭ) написание
func ParseExamType(raw string) (ExamType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "EGE", "ЕГЭ":
		return ExamEGE, true
	case "OGE", "ОГЭ":
		return ExamOGE, true
	default:
		return "", false
	}
}

// Label название категории для пользователя
func (e ExamType) Label() string {
	switch e {
	case ExamEGE:
		return "ЕГЭ"
	case ExamOGE:
		return "ОГЭ"
	default:
		return string(e)
	}
}

// Subject позиция каталога
type Subject struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	ExamType      ExamType  `json:"exam_type" db:"exam_type"`
	Price         int64     `json:"price" db:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty" db:"original_price"`
	Icon          string    `json:"icon" db:"icon"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	IsPopular     bool      `json:"is_popular" db:"is_popular"`
	DemoContent   *string   `json:"demo_content,omitempty" db:"demo_content"`
	FullContent   *string   `json:"-" db:"full_content"`
	ContentKey    *string   `json:"-" db:"content_key"` // ключ объекта в S3, если материал не помещается в строку
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// DiscountPercent round((1 - price/original) * 100), нулевые и отрицательные скидки не показываются
func (s Subject) DiscountPercent() int {
	if s.OriginalPrice == nil || *s.OriginalPrice <= 0 {
		return 0
	}

	discount := int(math.Round((1 - float64(s.Price)/float64(*s.OriginalPrice)) * 100))
	if discount <= 0 {
		return 0
	}
	return discount
}
