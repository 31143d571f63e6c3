package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile покупатель магазина, создаётся при первой аутентификации через Mini App
type Profile struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TelegramID int64     `json:"telegram_id" db:"telegram_id"`
	Username   *string   `json:"username,omitempty" db:"username"`
	FirstName  *string   `json:"first_name,omitempty" db:"first_name"`
	LastName   *string   `json:"last_name,omitempty" db:"last_name"`
	PhotoURL   *string   `json:"photo_url,omitempty" db:"photo_url"`
	IsBlocked  bool      `json:"is_blocked" db:"is_blocked"`
	IsAdmin    bool      `json:"is_admin" db:"is_admin"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// AuthResult результат обмена initData на профиль и сессионный токен
type AuthResult struct {
	Profile      *Profile
	TelegramUser WebAppUser
	Token        string
	ExpiresAt    time.Time
}

// WebAppUser пользователь из подписанного initData Mini App
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
}
