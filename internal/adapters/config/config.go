package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"sentinel/pkg/errors"
)

type Config struct {
	App           AppConfig
	HTTP          HTTPConfig
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	ErrorTracking ErrorTrackingConfig
	Dashboard     DashboardConfig
	Workers       WorkerConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"sentinel"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type HTTPConfig struct {
	Port            int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
	AllowedOrigin   string        `envconfig:"HTTP_ALLOWED_ORIGIN" default:"*"`
}

type PostgresConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" required:"true"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" required:"true"`
	Password string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	Database string `envconfig:"POSTGRES_DB" required:"true"`
	SSLMode  string `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" required:"true"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaConfig is optional: refresh events and invalidations only flow when brokers are set
type KafkaConfig struct {
	Brokers           []string `envconfig:"KAFKA_BROKERS"`
	Topic             string   `envconfig:"KAFKA_CATALOG_TOPIC" default:"catalog.events"`
	InvalidationTopic string   `envconfig:"KAFKA_INVALIDATION_TOPIC" default:"catalog.invalidations"`
	GroupID           string   `envconfig:"KAFKA_GROUP_ID" default:"sentinel"`
}

// Enabled reports whether an event producer should be created
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// DashboardConfig covers the presentation side: sessions, narration links and refresh throttling
type DashboardConfig struct {
	NarrationBaseURL string        `envconfig:"NARRATION_BASE_URL" default:"https://api.example.com/podcasts"`
	SessionTTL       time.Duration `envconfig:"DASHBOARD_SESSION_TTL" default:"24h"`
	RefreshRate      float64       `envconfig:"DASHBOARD_REFRESH_RATE" default:"0.2"` // refreshes per second
	RefreshBurst     int           `envconfig:"DASHBOARD_REFRESH_BURST" default:"1"`
	LoadOnStart      bool          `envconfig:"DASHBOARD_LOAD_ON_START" default:"true"`
	FetchTimeout     time.Duration `envconfig:"DASHBOARD_FETCH_TIMEOUT" default:"30s"`
}

// WorkerConfig controls the optional background refresh.
// Disabled by default: the catalog is refreshed on explicit request.
type WorkerConfig struct {
	CatalogRefreshEnabled  bool          `envconfig:"WORKER_CATALOG_REFRESH_ENABLED" default:"false"`
	CatalogRefreshInterval time.Duration `envconfig:"WORKER_CATALOG_REFRESH_INTERVAL" default:"15m"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	if cfg.Dashboard.RefreshRate <= 0 {
		return nil, errors.NewValidationError("DASHBOARD_REFRESH_RATE", "must be positive", cfg.Dashboard.RefreshRate)
	}
	if cfg.Dashboard.RefreshBurst < 1 {
		return nil, errors.NewValidationError("DASHBOARD_REFRESH_BURST", "must be at least 1", cfg.Dashboard.RefreshBurst)
	}

	return &cfg, nil
}
