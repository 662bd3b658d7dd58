package app

import (
	"context"
	"fmt"

	"github.com/automation-market/marketplace/internal/config"
	"github.com/automation-market/marketplace/internal/domain"
	"github.com/automation-market/marketplace/internal/handlers"
	"github.com/automation-market/marketplace/internal/ratelimit"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/repository/postgres"
	"github.com/automation-market/marketplace/internal/service"
	"github.com/automation-market/marketplace/internal/storage"
	"github.com/automation-market/marketplace/internal/utils/jwt"
	"github.com/automation-market/marketplace/internal/utils/password"
	"github.com/automation-market/marketplace/internal/utils/validate"
	"github.com/automation-market/marketplace/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// repositories содержит все репозитории приложения
type repositories struct {
	user           domain.UserRepository
	order          domain.OrderRepository
	ledger         domain.LedgerRepository
	wallet         domain.WalletRepository
	automation     domain.AutomationRepository
	userAutomation domain.UserAutomationRepository
	support        domain.SupportRepository
	customRequest  domain.CustomRequestRepository
}

// services содержит все сервисы приложения
type services struct {
	auth          domain.AuthService
	order         domain.OrderService
	ledger        domain.LedgerService
	wallet        domain.WalletService
	catalog       domain.CatalogService
	resale        domain.ResaleListService
	support       domain.SupportService
	customRequest domain.CustomRequestService
	security      domain.SecurityService
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	auth     *handlers.AuthHandler
	orders   *handlers.OrdersHandler
	admin    *handlers.AdminHandler
	wallet   *handlers.WalletHandler
	catalog  *handlers.CatalogHandler
	resale   *handlers.ResaleHandler
	support  *handlers.SupportHandler
	security *handlers.SecurityHandler
	realtime *handlers.RealtimeHandler
	health   *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos      *repositories
	services   *services
	handlers   *handlerSet
	jwtManager *jwt.Manager
	broker     realtime.Broker
	limiter    *ratelimit.Limiter
	workerPool *worker.Pool
}

// initDependencies создает все зависимости приложения
func initDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) (*dependencies, error) {
	// Создание репозиториев
	repos := &repositories{
		user:           postgres.NewUserRepository(dbPool),
		order:          postgres.NewOrderRepository(dbPool),
		ledger:         postgres.NewLedgerRepository(dbPool),
		wallet:         postgres.NewWalletRepository(dbPool),
		automation:     postgres.NewAutomationRepository(dbPool),
		userAutomation: postgres.NewUserAutomationRepository(dbPool),
		support:        postgres.NewSupportRepository(dbPool),
		customRequest:  postgres.NewCustomRequestRepository(dbPool),
	}

	broker, err := initBroker(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	media, err := initMediaStore(ctx, cfg, logger)
	if err != nil {
		_ = broker.Close()
		return nil, err
	}

	// Создание утилит
	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)
	validator := validate.New()

	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.MaxAttempts = cfg.AuthMaxAttempts
	limiterConfig.Lockout = cfg.AuthLockout
	limiter := ratelimit.New(limiterConfig)

	policy := domain.TransitionPolicyStrict
	if !cfg.StrictTransitions() {
		policy = domain.TransitionPolicyPermissive
	}

	// Пустой интерфейс отключает пересылку событий безопасности
	var forwarder service.SecurityForwarder
	if cfg.SecurityLogEndpoint != "" {
		forwarder = service.NewSecurityForwarder(cfg.SecurityLogEndpoint)
	}

	// Создание сервисов
	ledgerService := service.NewLedgerService(repos.order, repos.ledger, broker, service.DefaultFeeSchedule())
	svcs := &services{
		auth:          service.NewAuthService(repos.user, passwordHasher, jwtManager, limiter, validator),
		order:         service.NewOrderService(repos.order, repos.automation, ledgerService, broker, validator, policy, logger),
		ledger:        ledgerService,
		wallet:        service.NewWalletService(repos.wallet, broker),
		catalog:       service.NewCatalogService(repos.automation, media, validator),
		resale:        service.NewResaleListService(repos.automation, repos.userAutomation),
		support:       service.NewSupportService(repos.support, validator),
		customRequest: service.NewCustomRequestService(repos.customRequest, validator),
		security:      service.NewSecurityService(forwarder, logger),
	}

	// Создание handlers
	hdlrs := &handlerSet{
		auth:     handlers.NewAuthHandler(svcs.auth, logger),
		orders:   handlers.NewOrdersHandler(svcs.order, svcs.ledger, logger),
		admin:    handlers.NewAdminHandler(svcs.order, svcs.ledger, svcs.wallet, policy, logger),
		wallet:   handlers.NewWalletHandler(svcs.wallet, logger),
		catalog:  handlers.NewCatalogHandler(svcs.catalog, logger),
		resale:   handlers.NewResaleHandler(svcs.resale, logger),
		support:  handlers.NewSupportHandler(svcs.support, svcs.customRequest, logger),
		security: handlers.NewSecurityHandler(svcs.security, logger),
		realtime: handlers.NewRealtimeHandler(broker, svcs.order, logger),
		health:   handlers.NewHealthHandler(dbPool, logger, brokerCheck(broker)...),
	}

	// Создание worker pool
	workerPoolConfig := worker.Config{
		Workers:      cfg.WorkerPoolSize,
		QueueSize:    cfg.WorkerQueueSize,
		ScanInterval: cfg.WorkerScanInterval,
	}
	workerPool := worker.NewPool(workerPoolConfig, repos.order, svcs.ledger, logger)

	return &dependencies{
		repos:      repos,
		services:   svcs,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		broker:     broker,
		limiter:    limiter,
		workerPool: workerPool,
	}, nil
}

// initBroker выбирает Redis, если он настроен, иначе брокер в памяти процесса
func initBroker(ctx context.Context, cfg *config.Config, logger *zap.Logger) (realtime.Broker, error) {
	if !cfg.RedisEnabled() {
		logger.Info("using in-process realtime hub")
		return realtime.NewHub(), nil
	}

	broker, err := realtime.NewRedisBroker(ctx, cfg.RedisAddr, cfg.RedisPassword, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis broker: %w", err)
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	return broker, nil
}

// brokerCheck добавляет проверку брокера, если он умеет отвечать на Ping
func brokerCheck(broker realtime.Broker) []handlers.HealthCheck {
	if p, ok := broker.(handlers.Pinger); ok {
		return []handlers.HealthCheck{{Name: "realtime", Pinger: p}}
	}
	return nil
}

// initMediaStore возвращает nil, если MinIO не настроен
func initMediaStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.MediaStore, error) {
	if !cfg.MediaEnabled() {
		logger.Info("media storage disabled")
		return nil, nil
	}

	store, err := storage.NewMediaStore(ctx, storage.MinioConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		Bucket:    cfg.MinioBucket,
		UseSSL:    cfg.MinioUseSSL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init media store: %w", err)
	}

	return store, nil
}
