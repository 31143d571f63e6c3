package shop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/admin/tg-bots/exam-shop-bot/internal/domain"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/cache"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/usecase"
	"github.com/admin/tg-bots/exam-shop-bot/internal/usecases/texts"
)

const (
	defaultCatalogLimit = 10
	recentOrdersLimit   = 10
)

// Config параметры экранов магазина
type Config struct {
	CatalogLimit    int           `envconfig:"CATALOG_LIMIT" default:"10"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
	PendingOrderTTL time.Duration `envconfig:"PENDING_ORDER_TTL" default:"24h"`
	ExpireInterval  time.Duration `envconfig:"EXPIRE_INTERVAL" default:"15m"`
	ContentLinkTTL  time.Duration `envconfig:"CONTENT_LINK_TTL" default:"24h"`
}

type Service struct {
	SubjectRepo     repository.ISubjectRepo
	ProfileRepo     repository.IProfileRepo
	OrderRepo       repository.IOrderRepo
	PromoUseCase    usecase.IPromoUseCase
	TelegramService service.ITelegramService
	Cache           cache.Cache // nil, если Redis не настроен
	Log             *slog.Logger

	webAppURL    string
	catalogLimit int
	cacheTTL     time.Duration
}

func New(
	subjectRepo repository.ISubjectRepo,
	profileRepo repository.IProfileRepo,
	orderRepo repository.IOrderRepo,
	promoUseCase usecase.IPromoUseCase,
	telegramService service.ITelegramService,
	catalogCache cache.Cache,
	webAppURL string,
	cfg *Config,
	log *slog.Logger,
) *Service {
	s := &Service{
		SubjectRepo:     subjectRepo,
		ProfileRepo:     profileRepo,
		OrderRepo:       orderRepo,
		PromoUseCase:    promoUseCase,
		TelegramService: telegramService,
		Cache:           catalogCache,
		Log:             log,
		webAppURL:       webAppURL,
		catalogLimit:    defaultCatalogLimit,
	}
	if cfg != nil {
		if cfg.CatalogLimit > 0 {
			s.catalogLimit = cfg.CatalogLimit
		}
		s.cacheTTL = cfg.CatalogCacheTTL
	}
	return s
}

var _ usecase.IShopUseCase = (*Service)(nil)

// Welcome приветствие с inline-меню одним сообщением
func (s *Service) Welcome(ctx context.Context, chatID int64, firstName string) error {
	return s.TelegramService.SendMessage(ctx, chatID, texts.FormatWelcome(firstName), s.mainMenuKeyboard())
}

func (s *Service) MainMenu(ctx context.Context, target domain.ReplyTarget) error {
	return s.TelegramService.Reply(ctx, target, texts.MainMenu, s.mainMenuKeyboard())
}

// ReplyKeyboard постоянная клавиатура с разделами магазина
func (s *Service) ReplyKeyboard(ctx context.Context, chatID int64) error {
	return s.TelegramService.SendMessage(ctx, chatID, texts.ReplyKeyboardShown, replyKeyboard())
}

func (s *Service) Help(ctx context.Context, chatID int64) error {
	return s.TelegramService.SendMessage(ctx, chatID, texts.Help, nil)
}

func (s *Service) PromoHelp(ctx context.Context, target domain.ReplyTarget) error {
	return s.TelegramService.Reply(ctx, target, texts.PromoHelp, s.backKeyboard())
}

// Close убирает сообщение с меню
func (s *Service) Close(ctx context.Context, target domain.ReplyTarget) error {
	if !target.IsEdit() {
		return nil
	}
	return s.TelegramService.DeleteMessage(ctx, target.ChatID, target.MessageID)
}

func (s *Service) Failure(ctx context.Context, chatID int64) error {
	return s.TelegramService.SendMessage(ctx, chatID, texts.Failure, nil)
}

// Catalog экран категории. Для пустой категории ничего не отправляет и возвращает текст
// для ответа на callback
func (s *Service) Catalog(ctx context.Context, target domain.ReplyTarget, exam domain.ExamType) (string, error) {
	subjects, err := s.ListCatalog(ctx, exam)
	if err != nil {
		return "", err
	}
	if len(subjects) == 0 {
		return texts.CatalogEmpty, nil
	}

	return "", s.TelegramService.Reply(ctx, target, texts.FormatCatalog(exam, subjects), s.backKeyboard())
}

// ListCatalog активные предметы категории, не больше catalogLimit
func (s *Service) ListCatalog(ctx context.Context, exam domain.ExamType) ([]domain.Subject, error) {
	key := fmt.Sprintf("catalog:%s:%d", exam, s.catalogLimit)

	if subjects, ok := s.cachedCatalog(ctx, key); ok {
		return subjects, nil
	}

	subjects, err := s.SubjectRepo.ListActiveByExam(ctx, exam, s.catalogLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: list catalog: %v", domain.ErrPersistence, err)
	}

	s.storeCatalog(ctx, key, subjects)
	return subjects, nil
}

func (s *Service) cachedCatalog(ctx context.Context, key string) ([]domain.Subject, bool) {
	if s.Cache == nil || s.cacheTTL <= 0 {
		return nil, false
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.Log.Warn("catalog cache read failed", "error", err, "key", key)
		}
		return nil, false
	}

	var subjects []domain.Subject
	if err := json.Unmarshal([]byte(raw), &subjects); err != nil {
		s.Log.Warn("catalog cache entry is corrupted", "error", err, "key", key)
		return nil, false
	}
	return subjects, true
}

func (s *Service) storeCatalog(ctx context.Context, key string, subjects []domain.Subject) {
	if s.Cache == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(subjects)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		s.Log.Warn("catalog cache write failed", "error", err, "key", key)
	}
}

// Orders история заказов пользователя
func (s *Service) Orders(ctx context.Context, target domain.ReplyTarget, telegramID int64) error {
	orders, err := s.ListRecentOrders(ctx, telegramID, recentOrdersLimit)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return s.TelegramService.Reply(ctx, target, texts.OrdersNotRegistered, s.backKeyboard())
	case err != nil:
		return err
	case len(orders) == 0:
		return s.TelegramService.Reply(ctx, target, texts.OrdersEmpty, s.backKeyboard())
	}

	return s.TelegramService.Reply(ctx, target, texts.FormatOrders(orders, time.UTC), s.backKeyboard())
}

// ListRecentOrders последние заказы по Telegram ID, ErrNotFound если профиля нет
func (s *Service) ListRecentOrders(ctx context.Context, telegramID int64, limit int) ([]domain.OrderSummary, error) {
	profile, err := s.ProfileRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: load profile: %v", domain.ErrPersistence, err)
	}

	orders, err := s.OrderRepo.ListByProfile(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %v", domain.ErrPersistence, err)
	}
	return orders, nil
}

// Promo проверка промокода, ответ всегда новым сообщением
func (s *Service) Promo(ctx context.Context, chatID int64, code string) error {
	check, err := s.PromoUseCase.Resolve(ctx, code)
	if err != nil {
		return err
	}
	return s.TelegramService.SendMessage(ctx, chatID, texts.FormatPromo(*check), nil)
}
