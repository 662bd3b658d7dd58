package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Режимы проверки переходов статусов заказа
const (
	TransitionsStrict     = "strict"
	TransitionsPermissive = "permissive"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress  string        // Адрес и порт запуска сервиса
	DatabaseURI string        // URI подключения к БД
	JWTSecret   string        // Секретный ключ для JWT
	JWTTokenTTL time.Duration // Время жизни JWT токена
	LogLevel    string        // Уровень логирования

	// Worker Pool конфигурация
	WorkerPoolSize     int           // Количество воркеров
	WorkerQueueSize    int           // Размер очереди заказов
	WorkerScanInterval time.Duration // Интервал сканирования заказов без леджера

	StatusTransitions string // strict или permissive

	// Защита входа
	AuthMaxAttempts int
	AuthLockout     time.Duration

	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	SecurityLogEndpoint string
}

// StrictTransitions сообщает, нужно ли отклонять переходы вне графа
func (c *Config) StrictTransitions() bool {
	return c.StatusTransitions != TransitionsPermissive
}

// RedisEnabled сообщает, настроен ли Redis для ленты изменений
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// MediaEnabled сообщает, настроено ли хранилище медиа
func (c *Config) MediaEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioBucket != ""
}

// Load загружает конфигурацию из .env, переменных окружения и флагов
// Приоритет: env переменные > флаги > дефолтные значения
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{
		JWTSecret:          "default-secret-key-change-in-production",
		JWTTokenTTL:        24 * time.Hour,
		LogLevel:           "info",
		WorkerPoolSize:     3,
		WorkerQueueSize:    100,
		WorkerScanInterval: 30 * time.Second,
		StatusTransitions:  TransitionsStrict,
		AuthMaxAttempts:    5,
		AuthLockout:        15 * time.Minute,
	}

	fs := flag.NewFlagSet("marketplace", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Переменные окружения имеют приоритет над флагами
	lookupString("RUN_ADDRESS", &cfg.RunAddress)
	lookupString("DATABASE_URI", &cfg.DatabaseURI)
	// JWT секрет только из env
	lookupString("JWT_SECRET", &cfg.JWTSecret)
	lookupDuration("JWT_TOKEN_TTL", &cfg.JWTTokenTTL)
	lookupString("LOG_LEVEL", &cfg.LogLevel)

	lookupInt("WORKER_POOL_SIZE", &cfg.WorkerPoolSize)
	lookupInt("WORKER_QUEUE_SIZE", &cfg.WorkerQueueSize)
	lookupDuration("WORKER_SCAN_INTERVAL", &cfg.WorkerScanInterval)

	lookupString("STATUS_TRANSITIONS", &cfg.StatusTransitions)
	lookupInt("AUTH_MAX_ATTEMPTS", &cfg.AuthMaxAttempts)
	lookupDuration("AUTH_LOCKOUT", &cfg.AuthLockout)

	lookupString("REDIS_ADDR", &cfg.RedisAddr)
	lookupString("REDIS_PASSWORD", &cfg.RedisPassword)

	lookupString("MINIO_ENDPOINT", &cfg.MinioEndpoint)
	lookupString("MINIO_ACCESS_KEY", &cfg.MinioAccessKey)
	lookupString("MINIO_SECRET_KEY", &cfg.MinioSecretKey)
	lookupString("MINIO_BUCKET", &cfg.MinioBucket)
	if v, ok := os.LookupEnv("MINIO_USE_SSL"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MinioUseSSL = b
		}
	}

	lookupString("SECURITY_LOG_ENDPOINT", &cfg.SecurityLogEndpoint)

	// Валидация обязательных параметров
	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	if cfg.StatusTransitions != TransitionsStrict && cfg.StatusTransitions != TransitionsPermissive {
		return nil, fmt.Errorf("unknown STATUS_TRANSITIONS mode %q", cfg.StatusTransitions)
	}

	return cfg, nil
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// lookupInt игнорирует нечисловые и неположительные значения
func lookupInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}

func lookupDuration(key string, dst *time.Duration) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
		}
	}
}
