package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type Config struct {
	App      AppConfig      `yaml:"app"`
	HTTP     HTTPConfig     `yaml:"http"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		App:   AppConfig{Name: "goodplatters", LogLevel: "info"},
		HTTP:  HTTPConfig{Port: 3000},
		Store: StoreConfig{Driver: StoreDriverSQLite, SQLitePath: "goodplatters.db"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "goodplatters",
			Database: "goodplatters",
		},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Session:  SessionConfig{Backend: SessionBackendMemory, TTL: 12 * time.Hour},
		Gemini:   GeminiConfig{Model: "gemini-2.0-flash"},
	}
}

// Load reads the yaml file at path (a missing file means defaults),
// then applies .env and GP_* environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	switch c.Session.Backend {
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if c.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.LogLevel, "GP_LOG_LEVEL")
	setString(&cfg.Store.Driver, "GP_STORE_DRIVER")
	setString(&cfg.Store.SQLitePath, "GP_SQLITE_PATH")
	setString(&cfg.Database.Host, "GP_DB_HOST")
	setString(&cfg.Database.User, "GP_DB_USER")
	setString(&cfg.Database.Password, "GP_DB_PASSWORD")
	setString(&cfg.Database.Database, "GP_DB_NAME")
	setString(&cfg.RabbitMQ.Host, "GP_RABBITMQ_HOST")
	setString(&cfg.RabbitMQ.User, "GP_RABBITMQ_USER")
	setString(&cfg.RabbitMQ.Password, "GP_RABBITMQ_PASSWORD")
	setString(&cfg.Redis.Addr, "GP_REDIS_ADDR")
	setString(&cfg.Redis.Password, "GP_REDIS_PASSWORD")
	setString(&cfg.Session.Backend, "GP_SESSION_BACKEND")
	setString(&cfg.Gemini.APIKey, "GP_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "GP_GEMINI_MODEL")
	setString(&cfg.Telegram.Token, "GP_TELEGRAM_TOKEN")

	if err := setInt(&cfg.HTTP.Port, "GP_HTTP_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.Database.Port, "GP_DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&cfg.RabbitMQ.Port, "GP_RABBITMQ_PORT"); err != nil {
		return err
	}

	if v := os.Getenv("GP_RABBITMQ_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GP_RABBITMQ_ENABLED: %w", err)
		}
		cfg.RabbitMQ.Enabled = enabled
	}

	if v := os.Getenv("GP_SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid GP_SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = ttl
	}

	if v := os.Getenv("GP_TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GP_TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
