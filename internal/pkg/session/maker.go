// Package session выпускает и проверяет сессионные JWT для Mini App.
//
// Токен подписывается HS256 и несёт id профиля, telegram id и флаг администратора.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken подпись, срок или содержимое токена не прошли проверку
var ErrInvalidToken = errors.New("invalid session token")

// Claims данные сессии поверх стандартных claims
type Claims struct {
	ProfileID  uuid.UUID `json:"profile_id"`
	TelegramID int64     `json:"telegram_id"`
	IsAdmin    bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

// Maker генерация и разбор токенов
type Maker interface {
	GenerateToken(profileID uuid.UUID, telegramID int64, isAdmin bool) (string, time.Time, error)
	ParseToken(tokenStr string) (*Claims, error)
}

type Config struct {
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	InitDataTTL time.Duration `envconfig:"INIT_DATA_TTL" default:"24h"`
}

type MakerImpl struct {
	secretKey []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// GenerateToken возвращает подписанный токен и момент его истечения
func (m *MakerImpl) GenerateToken(profileID uuid.UUID, telegramID int64, isAdmin bool) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.tokenTTL)

	claims := Claims{
		ProfileID:  profileID,
		TelegramID: telegramID,
		IsAdmin:    isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken проверяет подпись (только HS256) и срок действия
func (m *MakerImpl) ParseToken(tokenStr string) (*Claims, error) {
	const op = "session.ParseToken"

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}
