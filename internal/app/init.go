package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http"
	adminController "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/controllers/admin"
	healthcheckController "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/controllers/healthcheck"
	miniappController "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/controllers/miniapp"
	telegramController "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/primary/http/controllers/telegram"
	alerterAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/kafka"
	starsProvider "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/payment/telegram_stars"
	"github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/admin/tg-bots/exam-shop-bot/internal/adapters/secondary/telegram"
	"github.com/admin/tg-bots/exam-shop-bot/internal/pkg/session"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/cache"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/kafka"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/repository"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/service"
	"github.com/admin/tg-bots/exam-shop-bot/internal/ports/storage"
	cartRepo "github.com/admin/tg-bots/exam-shop-bot/internal/repository/cart"
	orderRepo "github.com/admin/tg-bots/exam-shop-bot/internal/repository/order"
	profileRepo "github.com/admin/tg-bots/exam-shop-bot/internal/repository/profile"
	promoRepo "github.com/admin/tg-bots/exam-shop-bot/internal/repository/promo"
	subjectRepo "github.com/admin/tg-bots/exam-shop-bot/internal/repository/subject"
	alerterService "github.com/admin/tg-bots/exam-shop-bot/internal/services/alerter"
	jobScheduler "github.com/admin/tg-bots/exam-shop-bot/internal/services/jobs"
	telegramService "github.com/admin/tg-bots/exam-shop-bot/internal/services/telegram"
	authUsecase "github.com/admin/tg-bots/exam-shop-bot/internal/usecases/auth"
	orderUsecase "github.com/admin/tg-bots/exam-shop-bot/internal/usecases/order"
	paymentUsecase "github.com/admin/tg-bots/exam-shop-bot/internal/usecases/payment"
	promoUsecase "github.com/admin/tg-bots/exam-shop-bot/internal/usecases/promo"
	shopUsecase "github.com/admin/tg-bots/exam-shop-bot/internal/usecases/shop"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB             *sqlx.DB
	HTTPServer     *http.Server
	TelegramClient *tgAdapter.Client
	TelegramPoller *tgAdapter.Poller
	Events         kafka.IOrderEventProducer
	Cache          cache.Cache
	JobScheduler   *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)

	tgClient := tgAdapter.NewClient(a.Cfg.Telegram, a.Log)
	if err := a.registerBotCommands(ctx, tgClient); err != nil {
		a.Log.Warn("failed to register bot commands", "error", err)
	}

	// сервис отправки создаётся раньше use cases: они отвечают пользователю через него
	tgService := telegramService.New(tgClient, a.Log)

	externalServices := a.initExternalServices(ctx, tgClient)
	useCases := a.initUseCases(repos, tgClient, tgService, externalServices)
	tgService.SetUseCases(useCases.Shop, useCases.Payment)

	httpServer := a.initHTTP(db, tgService, tgClient, useCases)
	poller, err := a.initTelegramMode(ctx, tgService, tgClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	scheduler := a.initJobScheduler(externalServices.Alerter, useCases.Payment)

	return &Dependencies{
		DB:             db,
		HTTPServer:     httpServer,
		TelegramClient: tgClient,
		TelegramPoller: poller,
		Events:         externalServices.Events,
		Cache:          externalServices.Cache,
		JobScheduler:   scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Subject repository.ISubjectRepo
	Profile repository.IProfileRepo
	Order   repository.IOrderRepo
	Cart    repository.ICartRepo
	Promo   repository.IPromoRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Subject: subjectRepo.New(persistenceLayer, a.Log),
		Profile: profileRepo.New(persistenceLayer, a.Log),
		Order:   orderRepo.New(persistenceLayer, a.Log),
		Cart:    cartRepo.New(persistenceLayer, a.Log),
		Promo:   promoRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices опциональные внешние сервисы. Поле остаётся nil-интерфейсом, если сервис выключен
type externalServices struct {
	Alerter        service.IAlerterService
	Cache          cache.Cache
	ContentStorage storage.IContentStorage
	Events         kafka.IOrderEventProducer
}

// initExternalServices инициализирует Alerter, Redis, S3 и Kafka. Ошибка подключения не фатальна
func (a *App) initExternalServices(ctx context.Context, tgClient *tgAdapter.Client) *externalServices {
	services := &externalServices{}

	// Alerter - опциональный, может слать через отдельного бота
	if a.Cfg.Alerter != nil && a.Cfg.Alerter.Enabled {
		sender := tgClient
		if a.Cfg.Alerter.BotToken != "" {
			sender = tgAdapter.NewClient(&tgAdapter.Config{
				BotToken:       a.Cfg.Alerter.BotToken,
				APIURL:         a.Cfg.Telegram.APIURL,
				RequestTimeout: a.Cfg.Telegram.RequestTimeout,
			}, a.Log)
		}
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, sender, a.Log)
		services.Alerter = alerterService.New(alerterClient, a.Name)
		a.Log.Info("alerter enabled", "chat_id", a.Cfg.Alerter.ChatID)
	}

	// Redis Cache - опциональный
	if a.Cfg.Redis != nil && a.Cfg.Redis.Enabled {
		redisClient, err := a.Cfg.Redis.NewConnection(ctx)
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient, a.Cfg.Redis.KeyPrefix)
			a.Log.Info("redis cache connected successfully")
		}
	}

	// S3 - опциональный, без него выдаются только материалы из full_content
	if a.Cfg.S3 != nil && a.Cfg.S3.Enabled {
		minioClient, err := a.Cfg.S3.NewClient(ctx)
		if err != nil {
			a.Log.Warn("failed to init content storage, continuing without it", "error", err)
		} else {
			services.ContentStorage = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("content storage connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	// Kafka - опциональная, события заказов
	if a.Cfg.Kafka != nil && a.Cfg.Kafka.Enabled {
		producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer, order events disabled", "error", err)
		} else {
			services.Events = producer
		}
	}

	return services
}

// useCases содержит инициализированные use cases
type useCases struct {
	Auth    *authUsecase.Service
	Order   *orderUsecase.Service
	Promo   *promoUsecase.Service
	Payment *paymentUsecase.Service
	Shop    *shopUsecase.Service
	Tokens  *session.MakerImpl
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(
	repos *repositories,
	tgClient *tgAdapter.Client,
	tgService *telegramService.Service,
	ext *externalServices,
) *useCases {
	tokens := session.NewMaker(a.Cfg.Auth.JWTSecret, a.Cfg.Auth.TokenTTL)
	promo := promoUsecase.New(repos.Promo, a.Log)

	return &useCases{
		Auth: authUsecase.New(
			repos.Profile,
			tokens,
			a.Cfg.Telegram.BotToken,
			a.Cfg.Auth.InitDataTTL,
			a.Log,
		),
		Order: orderUsecase.New(
			repos.Subject,
			repos.Order,
			repos.Cart,
			ext.Events,  // может быть nil
			ext.Alerter, // может быть nil
			a.Log,
		),
		Promo: promo,
		Payment: paymentUsecase.New(
			repos.Order,
			starsProvider.NewProvider(tgClient, a.Log),
			tgService,
			ext.ContentStorage, // может быть nil
			ext.Events,
			ext.Alerter,
			a.Cfg.Shop.ContentLinkTTL,
			a.Log,
		),
		Shop: shopUsecase.New(
			repos.Subject,
			repos.Profile,
			repos.Order,
			promo,
			tgService,
			ext.Cache, // может быть nil
			a.Cfg.Telegram.WebAppURL,
			a.Cfg.Shop,
			a.Log,
		),
		Tokens: tokens,
	}
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	tgService *telegramService.Service,
	tgClient *tgAdapter.Client,
	uc *useCases,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(pg.NewDB(db), a.Name, a.Log),
		telegramController.New(tgService, a.Cfg.Telegram.WebhookSecret, a.Log),
		miniappController.New(uc.Auth, uc.Order, uc.Payment, uc.Promo, uc.Tokens, a.Log),
		adminController.New(
			uc.Payment,
			tgClient,
			adminController.WebhookSettings{URL: a.webhookURL(), Secret: a.Cfg.Telegram.WebhookSecret},
			a.Cfg.Shop.PendingOrderTTL,
			uc.Tokens,
			a.Log,
		),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// webhookURL публичный адрес вебхука, пустой в режиме polling
func (a *App) webhookURL() string {
	if a.Cfg.Telegram.WebhookURL == "" {
		return ""
	}
	return a.Cfg.Telegram.WebhookURL + "/webhook"
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	tgClient *tgAdapter.Client,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		if err := a.setupWebhook(ctx, tgClient); err != nil {
			return nil, fmt.Errorf("failed to setup webhook: %w", err)
		}
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	return tgAdapter.NewPoller(tgClient, a.Cfg.Telegram, tgService, a.Log), nil
}

// setupWebhook регистрирует вебхук с секретом из конфигурации
func (a *App) setupWebhook(ctx context.Context, tgClient *tgAdapter.Client) error {
	webhookURL := a.webhookURL()
	if webhookURL == "" {
		return fmt.Errorf("webhook_url is required when use_webhook is true")
	}

	if err := tgClient.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
		a.Log.Error("failed to set webhook", "error", err, "webhook_url", webhookURL)
		return err
	}

	a.Log.Info("webhook set successfully", "webhook_url", webhookURL)
	return nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	payment *paymentUsecase.Service,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc, nil)

	// Регистрируем джобу отмены неоплаченных заказов
	canceller := jobScheduler.NewStaleOrderCanceller(
		payment,
		a.Cfg.Shop.ExpireInterval,
		a.Cfg.Shop.PendingOrderTTL,
		a.Log,
	)
	scheduler.Register(canceller)
	a.Log.Info("stale order canceller job registered",
		"interval", a.Cfg.Shop.ExpireInterval,
		"ttl", a.Cfg.Shop.PendingOrderTTL,
	)

	return scheduler
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, client *tgAdapter.Client) error {
	commands := []tgAdapter.BotCommand{
		{Command: "start", Description: "Главное меню"},
		{Command: "orders", Description: "Мои заказы"},
		{Command: "promo", Description: "Проверить промокод"},
		{Command: "menu", Description: "Показать клавиатуру"},
		{Command: "help", Description: "Помощь"},
	}

	return client.SetMyCommands(ctx, commands)
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if !a.Cfg.Postgres.MigrateOnStart {
		return db, nil
	}

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
