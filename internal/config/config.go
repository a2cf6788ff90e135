package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App      AppConfig
	Auth     AuthConfig
	Session  SessionConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	UI       UIConfig
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

// AuthConfig points at the external authentication service.
type AuthConfig struct {
	BaseURL            string
	RequestTimeoutMS   int
	VerifyTimeoutMS    int
	LastLoginTimeoutMS int
}

// SessionConfig selects the token backend and the browser cookie.
type SessionConfig struct {
	Driver          string
	CookieName      string
	CookieSecure    bool
	LifetimeMinutes int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// UIConfig tunes the rendered views.
type UIConfig struct {
	DefaultLanguage string
	RedirectDelayMS int
}

const (
	SessionDriverMemory = "memory"
	SessionDriverRedis  = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "clinic-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Auth: AuthConfig{
			BaseURL:            strings.TrimRight(getEnv("AUTH_BASE_URL", "http://127.0.0.1:8000/auth"), "/"),
			RequestTimeoutMS:   getEnvAsInt("AUTH_REQUEST_TIMEOUT_MS", 10000),
			VerifyTimeoutMS:    getEnvAsInt("AUTH_VERIFY_TIMEOUT_MS", 5000),
			LastLoginTimeoutMS: getEnvAsInt("AUTH_LAST_LOGIN_TIMEOUT_MS", 2000),
		},
		Session: SessionConfig{
			Driver:          strings.ToLower(getEnv("SESSION_DRIVER", SessionDriverMemory)),
			CookieName:      getEnv("SESSION_COOKIE_NAME", "clinic_sid"),
			CookieSecure:    getEnvAsBool("SESSION_COOKIE_SECURE", false),
			LifetimeMinutes: getEnvAsInt("SESSION_LIFETIME_MINUTES", 60*24),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			Prefix:   getEnv("REDIS_SESSION_PREFIX", "portal:session:"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		UI: UIConfig{
			DefaultLanguage: getEnv("UI_DEFAULT_LANGUAGE", "en"),
			RedirectDelayMS: getEnvAsInt("UI_LOGIN_REDIRECT_DELAY_MS", 1000),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case SessionDriverMemory, SessionDriverRedis:
	default:
		return fmt.Errorf("invalid SESSION_DRIVER %q, expected %q or %q", c.Session.Driver, SessionDriverMemory, SessionDriverRedis)
	}
	if c.Auth.BaseURL == "" {
		return fmt.Errorf("AUTH_BASE_URL must not be empty")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if limit := c.App.RequestTimeout(); limit > 0 && c.Auth.VerifyTimeout() >= limit {
		return fmt.Errorf("AUTH_VERIFY_TIMEOUT_MS (%s) must be below HTTP_REQUEST_TIMEOUT_SECONDS (%s)", c.Auth.VerifyTimeout(), limit)
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

// RequestTimeout bounds a single call to the auth service.
func (a AuthConfig) RequestTimeout() time.Duration {
	return millis(a.RequestTimeoutMS, 10*time.Second)
}

// VerifyTimeout bounds token verification; expiry counts as an invalid session.
func (a AuthConfig) VerifyTimeout() time.Duration {
	return millis(a.VerifyTimeoutMS, 5*time.Second)
}

// LastLoginTimeout bounds the best-effort last-login update.
func (a AuthConfig) LastLoginTimeout() time.Duration {
	return millis(a.LastLoginTimeoutMS, 2*time.Second)
}

// Lifetime is the session TTL used when the token carries no expiry.
func (s SessionConfig) Lifetime() time.Duration {
	if s.LifetimeMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.LifetimeMinutes) * time.Minute
}

// RedirectDelay is how long the login success message stays before the dashboard loads.
func (u UIConfig) RedirectDelay() time.Duration {
	if u.RedirectDelayMS < 0 {
		return 0
	}
	return time.Duration(u.RedirectDelayMS) * time.Millisecond
}

func millis(ms int, fallback time.Duration) time.Duration {
	if ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
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
