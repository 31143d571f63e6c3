package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/initdata"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
)

type Service struct {
	ProfileRepo repository.IProfileRepo
	Tokens      session.Maker
	Log         *slog.Logger

	botToken    string
	initDataTTL time.Duration
	now         func() time.Time
}

func New(
	profileRepo repository.IProfileRepo,
	tokens session.Maker,
	botToken string,
	initDataTTL time.Duration,
	log *slog.Logger,
) *Service {
	if initDataTTL <= 0 {
		initDataTTL = initdata.DefaultMaxAge
	}
	return &Service{
		ProfileRepo: profileRepo,
		Tokens:      tokens,
		Log:         log,
		botToken:    botToken,
		initDataTTL: initDataTTL,
		now:         time.Now,
	}
}

var _ usecase.IAuthUseCase = (*Service)(nil)

// Authenticate проверяет подпись initData, создаёт или обновляет профиль и выдаёт сессионный токен
func (s *Service) Authenticate(ctx context.Context, rawInitData string) (*domain.AuthResult, error) {
	data, err := initdata.ValidateWithMaxAge(rawInitData, s.botToken, s.now(), s.initDataTTL)
	if err != nil {
		return nil, err
	}
	user := data.User

	existing, err := s.ProfileRepo.GetByTelegramID(ctx, user.ID)
	switch {
	case err == nil && existing.IsBlocked:
		s.Log.Warn("blocked profile tried to sign in",
			"profile_id", existing.ID,
			"telegram_id", user.ID)
		return nil, fmt.Errorf("%w: profile is blocked", domain.ErrForbidden)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("%w: load profile: %v", domain.ErrPersistence, err)
	}

	profile, err := s.ProfileRepo.Upsert(ctx, &domain.Profile{
		TelegramID: user.ID,
		Username:   optional(user.Username),
		FirstName:  optional(user.FirstName),
		LastName:   optional(user.LastName),
		PhotoURL:   optional(user.PhotoURL),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: upsert profile: %v", domain.ErrPersistence, err)
	}
	if profile.IsBlocked {
		return nil, fmt.Errorf("%w: profile is blocked", domain.ErrForbidden)
	}

	token, expiresAt, err := s.Tokens.GenerateToken(profile.ID, profile.TelegramID, profile.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.Log.Info("profile authenticated",
		"profile_id", profile.ID,
		"telegram_id", profile.TelegramID,
		"created", existing == nil)

	return &domain.AuthResult{
		Profile:      profile,
		TelegramUser: user,
		Token:        token,
		ExpiresAt:    expiresAt,
	}, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
