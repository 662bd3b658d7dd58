package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/automation-market/marketplace/internal/config"
	"github.com/automation-market/marketplace/internal/ratelimit"
	"github.com/automation-market/marketplace/internal/realtime"
	"github.com/automation-market/marketplace/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// limiterSweepInterval период очистки неактивных ключей ограничителя
const limiterSweepInterval = time.Minute

// App представляет приложение
type App struct {
	config     *config.Config
	logger     *zap.Logger
	db         *pgxpool.Pool
	broker     realtime.Broker
	limiter    *ratelimit.Limiter
	router     *chi.Mux
	workerPool *worker.Pool
	server     *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация логгера
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Инициализация базы данных и миграции
	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	// Инициализация зависимостей
	deps, err := initDependencies(ctx, cfg, dbPool, logger)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	// Настройка роутера
	router := setupRouter(deps, logger)

	// Создание HTTP сервера
	server := createServer(cfg.RunAddress, router)

	return &App{
		config:     cfg,
		logger:     logger,
		db:         dbPool,
		broker:     deps.broker,
		limiter:    deps.limiter,
		router:     router,
		workerPool: deps.workerPool,
		server:     server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Очистка ограничителя попыток входа
	go a.limiter.Run(ctx, limiterSweepInterval)

	// Запуск worker pool
	a.workerPool.Start(ctx)
	a.logger.Info("worker pool started")

	// Сервер работает до сигнала завершения, затем graceful shutdown
	err := a.runServer(ctx)
	a.shutdown(cancel)

	return err
}
