package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // 内嵌时区数据库

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	Orders    OrdersConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Sentry    SentryConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Version  string
	Timezone string

	location *time.Location
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type LogConfig struct {
	Level string
}

type OrdersConfig struct {
	PageSize int
}

type AuthConfig struct {
	BcryptCost int
}

// RateLimitConfig RPS 为 0 时不限流；RedisURL 非空时多实例共享计数
type RateLimitConfig struct {
	RPS      float64
	Burst    int
	RedisURL string
}

type CORSConfig struct {
	AllowOrigins []string
}

type SentryConfig struct {
	DSN string
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load 读取默认值、config.yaml、.env 与环境变量（优先级依次升高）
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	v.AutomaticEnv()
	return build(v)
}

// Default 仅包含默认值的配置，测试与工具命令使用
func Default() *Config {
	cfg, err := build(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("APP_NAME", "bakery-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")

	v.SetDefault("PORT", 3333)
	v.SetDefault("READ_TIMEOUT", 15*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "bakery")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORDERS_PAGE_SIZE", 10)
	v.SetDefault("BCRYPT_COST", 6)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SENTRY_DSN", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "bakery-api")

	return v
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Env:      strings.ToLower(v.GetString("APP_ENV")),
			Version:  v.GetString("APP_VERSION"),
			Timezone: v.GetString("TIMEZONE"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("PORT"),
			ReadTimeout:     v.GetDuration("READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log:    LogConfig{Level: strings.ToLower(v.GetString("LOG_LEVEL"))},
		Orders: OrdersConfig{PageSize: v.GetInt("ORDERS_PAGE_SIZE")},
		Auth:   AuthConfig{BcryptCost: v.GetInt("BCRYPT_COST")},
		RateLimit: RateLimitConfig{
			RPS:      v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:    v.GetInt("RATE_LIMIT_BURST"),
			RedisURL: v.GetString("RATE_LIMIT_REDIS_URL"),
		},
		CORS:   CORSConfig{AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS"))},
		Sentry: SentryConfig{DSN: v.GetString("SENTRY_DSN")},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q (supported: postgres, sqlite)", c.Database.Driver)
	}
	if c.Orders.PageSize < 1 {
		return fmt.Errorf("config: ORDERS_PAGE_SIZE must be >= 1, got %d", c.Orders.PageSize)
	}
	// bcrypt.MinCost .. bcrypt.MaxCost
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("config: BCRYPT_COST must be within 4..31, got %d", c.Auth.BcryptCost)
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("config: TIMEZONE %q: %w", c.App.Timezone, err)
	}
	c.App.location = loc
	return nil
}

// Location 业务时区（默认 America/Sao_Paulo）
func (a AppConfig) Location() *time.Location {
	if a.location == nil {
		return time.UTC
	}
	return a.location
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DSN DATABASE_URL 优先，否则由离散字段拼接
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == DriverSQLite {
		return d.Name + ".db"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
