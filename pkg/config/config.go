package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App             AppConfig      `mapstructure:"app"`
	Server          ServerConfig   `mapstructure:"server"`
	Upstream        UpstreamConfig `mapstructure:"upstream"`
	Session         SessionConfig  `mapstructure:"session"`
	Redis           RedisConfig    `mapstructure:"redis"`
	SessionDatabase DatabaseConfig `mapstructure:"session_database"`
	Stats           StatsConfig    `mapstructure:"stats"`
	OTel            OTelConfig     `mapstructure:"otel"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// UpstreamConfig holds settings for the complaint backend API
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig holds browser session settings.
// The cookie carries a signed session id; the session record itself
// (upstream bearer token, theme preference) lives in the configured store.
type SessionConfig struct {
	CookieName   string        `mapstructure:"cookie_name"`
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	Store        string        `mapstructure:"store"` // redis or postgres
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the PostgreSQL connection string
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the Redis address
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StatsConfig holds settings for the statistics overview
type StatsConfig struct {
	TopAddressesLimit int    `mapstructure:"top_addresses_limit"`
	GroupByPeriod     string `mapstructure:"group_by_period"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	return LoadWithPath(".env")
}

// LoadWithPath loads configuration from a specific env file path.
// A missing file is not an error; environment variables still apply.
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "kopuro-portal")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")

	// Server defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	// Upstream complaint backend
	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000")
	v.SetDefault("UPSTREAM_TIMEOUT", "30s")

	// Session defaults
	v.SetDefault("SESSION_COOKIE_NAME", "kopuro_session")
	v.SetDefault("SESSION_SECRET", "dev-only-session-secret")
	v.SetDefault("SESSION_TTL", "720h") // 30 days
	v.SetDefault("SESSION_STORE", "redis")
	v.SetDefault("SESSION_SECURE_COOKIE", false)

	// Redis defaults
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 50)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 5)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Session database (used when SESSION_STORE=postgres)
	v.SetDefault("SESSION_DATABASE_HOST", "localhost")
	v.SetDefault("SESSION_DATABASE_PORT", 5432)
	v.SetDefault("SESSION_DATABASE_USER", "postgres")
	v.SetDefault("SESSION_DATABASE_PASSWORD", "postgres")
	v.SetDefault("SESSION_DATABASE_DBNAME", "kopuro_sessions")
	v.SetDefault("SESSION_DATABASE_SSLMODE", "disable")
	v.SetDefault("SESSION_DATABASE_MAX_CONNS", 10)
	v.SetDefault("SESSION_DATABASE_MIN_CONNS", 2)
	v.SetDefault("SESSION_DATABASE_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("SESSION_DATABASE_CONN_MAX_IDLE_TIME", "30m")

	// Stats defaults
	v.SetDefault("STATS_TOP_ADDRESSES_LIMIT", 5)
	v.SetDefault("STATS_GROUP_BY_PERIOD", "day")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)
}

func bindConfig(v *viper.Viper, cfg *Config) {
	// App
	cfg.App.Name = v.GetString("APP_NAME")
	cfg.App.Environment = v.GetString("APP_ENVIRONMENT")
	cfg.App.Debug = v.GetBool("APP_DEBUG")
	cfg.App.Version = v.GetString("APP_VERSION")

	// Server
	cfg.Server.Host = v.GetString("SERVER_HOST")
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.ReadTimeout = v.GetDuration("SERVER_READ_TIMEOUT")
	cfg.Server.WriteTimeout = v.GetDuration("SERVER_WRITE_TIMEOUT")
	cfg.Server.IdleTimeout = v.GetDuration("SERVER_IDLE_TIMEOUT")

	// Upstream
	cfg.Upstream.BaseURL = v.GetString("UPSTREAM_BASE_URL")
	cfg.Upstream.Timeout = v.GetDuration("UPSTREAM_TIMEOUT")

	// Session
	cfg.Session.CookieName = v.GetString("SESSION_COOKIE_NAME")
	cfg.Session.Secret = v.GetString("SESSION_SECRET")
	cfg.Session.TTL = v.GetDuration("SESSION_TTL")
	cfg.Session.Store = v.GetString("SESSION_STORE")
	cfg.Session.SecureCookie = v.GetBool("SESSION_SECURE_COOKIE")

	// Redis
	cfg.Redis.Host = v.GetString("REDIS_HOST")
	cfg.Redis.Port = v.GetInt("REDIS_PORT")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	cfg.Redis.MinIdleConns = v.GetInt("REDIS_MIN_IDLE_CONNS")
	cfg.Redis.DialTimeout = v.GetDuration("REDIS_DIAL_TIMEOUT")
	cfg.Redis.ReadTimeout = v.GetDuration("REDIS_READ_TIMEOUT")
	cfg.Redis.WriteTimeout = v.GetDuration("REDIS_WRITE_TIMEOUT")

	// Session database
	cfg.SessionDatabase.Host = v.GetString("SESSION_DATABASE_HOST")
	cfg.SessionDatabase.Port = v.GetInt("SESSION_DATABASE_PORT")
	cfg.SessionDatabase.User = v.GetString("SESSION_DATABASE_USER")
	cfg.SessionDatabase.Password = v.GetString("SESSION_DATABASE_PASSWORD")
	cfg.SessionDatabase.DBName = v.GetString("SESSION_DATABASE_DBNAME")
	cfg.SessionDatabase.SSLMode = v.GetString("SESSION_DATABASE_SSLMODE")
	cfg.SessionDatabase.MaxConns = v.GetInt("SESSION_DATABASE_MAX_CONNS")
	cfg.SessionDatabase.MinConns = v.GetInt("SESSION_DATABASE_MIN_CONNS")
	cfg.SessionDatabase.ConnMaxLifetime = v.GetDuration("SESSION_DATABASE_CONN_MAX_LIFETIME")
	cfg.SessionDatabase.ConnMaxIdleTime = v.GetDuration("SESSION_DATABASE_CONN_MAX_IDLE_TIME")

	// Stats
	cfg.Stats.TopAddressesLimit = v.GetInt("STATS_TOP_ADDRESSES_LIMIT")
	cfg.Stats.GroupByPeriod = v.GetString("STATS_GROUP_BY_PERIOD")

	// OTel
	cfg.OTel.Enabled = v.GetBool("OTEL_ENABLED")
	cfg.OTel.CollectorAddr = v.GetString("OTEL_COLLECTOR_ADDR")
	cfg.OTel.SampleRatio = v.GetFloat64("OTEL_SAMPLE_RATIO")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}

	if c.Session.Store != "redis" && c.Session.Store != "postgres" {
		return fmt.Errorf("invalid session store: %s (must be redis or postgres)", c.Session.Store)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if c.App.Environment == "production" && c.Session.Secret == "dev-only-session-secret" {
		return fmt.Errorf("session secret must be changed in production")
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
