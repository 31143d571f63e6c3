package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// promoTokenPattern голое слово из чата, которое трактуется как промокод
var promoTokenPattern = regexp.MustCompile(`^[A-Za-z0-9]{3,20}$`)

// PromoCode промокод, код хранится в верхнем регистре
type PromoCode struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Code            string     `json:"code" db:"code"`
	DiscountPercent int        `json:"discount_percent" db:"discount_percent"`
	MaxUses         *int       `json:"max_uses,omitempty" db:"max_uses"`
	CurrentUses     int        `json:"current_uses" db:"current_uses"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// PromoStatus итог проверки промокода
type PromoStatus string

const (
	PromoNotFound  PromoStatus = "not_found"
	PromoExhausted PromoStatus = "exhausted"
	PromoExpired   PromoStatus = "expired"
	PromoValid     PromoStatus = "valid"
)

// PromoCheck результат проверки, DiscountPercent заполнен только для PromoValid
type PromoCheck struct {
	Status          PromoStatus
	Code            string
	DiscountPercent int
}

// Err ошибка-сентинел для недействительного промокода, nil для действительного
func (c PromoCheck) Err() error {
	switch c.Status {
	case PromoValid:
		return nil
	case PromoExhausted:
		return ErrPromoExhausted
	case PromoExpired:
		return ErrPromoExpired
	default:
		return fmt.Errorf("promo code %q: %w", c.Code, ErrNotFound)
	}
}

// Check порядок проверок: существование → исчерпание → срок действия.
// Первая не пройденная проверка определяет причину отказа.
func (p *PromoCode) Check(now time.Time) PromoCheck {
	if p == nil || !p.IsActive {
		return PromoCheck{Status: PromoNotFound}
	}

	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return PromoCheck{Status: PromoExhausted, Code: p.Code}
	}

	if p.ExpiresAt != nil && p.ExpiresAt.Before(now) {
		return PromoCheck{Status: PromoExpired, Code: p.Code}
	}

	return PromoCheck{Status: PromoValid, Code: p.Code, DiscountPercent: p.DiscountPercent}
}

// NormalizePromoCode trim + верхний регистр
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LooksLikePromoCode латиница и цифры, от 3 до 20 символов
func LooksLikePromoCode(text string) bool {
	return promoTokenPattern.MatchString(text)
}
