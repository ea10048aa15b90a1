package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // часовой пояс салона без системной tzdata

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Драйверы кэша расписания сборов
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Драйверы публикации событий
const (
	EventsDriverNone     = "none"
	EventsDriverRabbitMQ = "rabbitmq"
	EventsDriverWebhook  = "webhook"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
// Порядок: config.toml -> .env -> переменные окружения -> значения по умолчанию
type Config struct {
	App      AppConfig      `toml:"app"`
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	CORS     CORSConfig     `toml:"cors"`
	Cache    CacheConfig    `toml:"cache"`
	Redis    RedisConfig    `toml:"redis"`
	Events   EventsConfig   `toml:"events"`
}

type AppConfig struct {
	Timezone string `toml:"timezone" env:"APP_TIMEZONE"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`         // секунды
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`       // секунды
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`         // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOGS_FILE"`
	Level string `toml:"level" env:"LOGS_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

// AuthConfig проверка bearer-токенов внешнего провайдера авторизации (HMAC)
type AuthConfig struct {
	Enabled   bool   `toml:"enabled" env:"AUTH_ENABLED"`
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	AdminRole string `toml:"admin_role" env:"AUTH_ADMIN_ROLE"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type CacheConfig struct {
	Driver string `toml:"driver" env:"CACHE_DRIVER"` // memory | redis
	Size   int    `toml:"size" env:"CACHE_SIZE"`
	TTL    int    `toml:"ttl" env:"CACHE_TTL"` // секунды
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
}

type EventsConfig struct {
	Driver         string `toml:"driver" env:"EVENTS_DRIVER"` // none | rabbitmq | webhook
	AMQPURL        string `toml:"amqp_url" env:"EVENTS_AMQP_URL"`
	Exchange       string `toml:"exchange" env:"EVENTS_EXCHANGE"`
	WebhookURL     string `toml:"webhook_url" env:"EVENTS_WEBHOOK_URL"`
	WebhookSecret  string `toml:"webhook_secret" env:"EVENTS_WEBHOOK_SECRET"`
	WebhookTimeout int    `toml:"webhook_timeout" env:"EVENTS_WEBHOOK_TIMEOUT"` // секунды
}

// Load загружает конфигурацию
// Отсутствующие config.toml и .env не считаются ошибкой
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.App.Timezone, "America/Sao_Paulo")

	setDefaultInt(&c.Server.HTTPPort, 8080)
	setDefaultInt(&c.Server.ReadTimeout, 10)
	setDefaultInt(&c.Server.WriteTimeout, 10)
	setDefaultInt(&c.Server.IdleTimeout, 60)
	setDefaultInt(&c.Server.ShutdownTimeout, 10)

	setDefault(&c.Database.Host, "localhost")
	setDefaultInt(&c.Database.Port, 5432)
	setDefault(&c.Database.SSLMode, "disable")
	setDefaultInt(&c.Database.MaxOpenConns, 25)
	setDefaultInt(&c.Database.MaxIdleConns, 5)
	setDefaultInt(&c.Database.ConnMaxLifetime, 300)

	setDefault(&c.Logs.Level, "info")

	setDefault(&c.Metrics.Path, "/metrics")
	setDefault(&c.Metrics.ServiceName, "salonservice")

	setDefault(&c.Auth.AdminRole, "admin")

	setDefault(&c.Cache.Driver, CacheDriverMemory)
	setDefaultInt(&c.Cache.Size, 16)
	setDefaultInt(&c.Cache.TTL, 300)

	setDefault(&c.Redis.Addr, "localhost:6379")

	setDefault(&c.Events.Driver, EventsDriverNone)
	setDefault(&c.Events.Exchange, "salon.events")
	setDefaultInt(&c.Events.WebhookTimeout, 5)

	c.Cache.Driver = strings.ToLower(c.Cache.Driver)
	c.Events.Driver = strings.ToLower(c.Events.Driver)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: app.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required when auth is enabled", ErrInvalidConfig)
	}

	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis:
	default:
		return fmt.Errorf("%w: unknown cache.driver %q", ErrInvalidConfig, c.Cache.Driver)
	}

	switch c.Events.Driver {
	case EventsDriverNone:
	case EventsDriverRabbitMQ:
		if c.Events.AMQPURL == "" {
			return fmt.Errorf("%w: events.amqp_url is required for rabbitmq driver", ErrInvalidConfig)
		}
	case EventsDriverWebhook:
		if c.Events.WebhookURL == "" {
			return fmt.Errorf("%w: events.webhook_url is required for webhook driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown events.driver %q", ErrInvalidConfig, c.Events.Driver)
	}

	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location часовой пояс салона
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

func setDefaultInt(field *int, value int) {
	if *field == 0 {
		*field = value
	}
}
