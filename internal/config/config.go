package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Store        StoreConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Realtime     RealtimeConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig controls the in-memory store.
type StoreConfig struct {
	// Strict enforces the transition table, NotFound errors and
	// referential integrity. When false the store accepts any known status
	// and silently ignores unknown ids.
	Strict bool
	Seed   bool
}

// RedisConfig holds Redis connection values for the change relay.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// RealtimeConfig configures the websocket change feed.
type RealtimeConfig struct {
	Enabled      bool
	ClientBuffer int
}

// NotificationConfig tunes event relaying.
type NotificationConfig struct {
	RelayTimeoutMillis int
	// RelayQueueSize bounds events waiting for the relay; extra events are dropped.
	RelayQueueSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "maintenance-hub"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Strict: getEnvAsBool("LIFECYCLE_STRICT", true),
			Seed:   getEnvAsBool("STORE_SEED", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "maintenance.changes"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Realtime: RealtimeConfig{
			Enabled:      getEnvAsBool("WS_ENABLED", true),
			ClientBuffer: getEnvAsInt("WS_CLIENT_BUFFER", 16),
		},
		Notification: NotificationConfig{
			RelayTimeoutMillis: getEnvAsInt("RELAY_TIMEOUT_MILLIS", 500),
			RelayQueueSize:     getEnvAsInt("RELAY_QUEUE_SIZE", 256),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.App.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid APP_PORT %q", c.App.Port)
	}
	if c.Notification.RelayQueueSize < 1 {
		return fmt.Errorf("RELAY_QUEUE_SIZE must be positive, got %d", c.Notification.RelayQueueSize)
	}
	if c.Realtime.ClientBuffer < 1 {
		return fmt.Errorf("WS_CLIENT_BUFFER must be positive, got %d", c.Realtime.ClientBuffer)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// RelayTimeout bounds a single relay publish.
func (n NotificationConfig) RelayTimeout() time.Duration {
	if n.RelayTimeoutMillis <= 0 {
		return 0
	}
	return time.Duration(n.RelayTimeoutMillis) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
