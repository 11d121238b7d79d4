package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Storage  StorageConfig  `toml:"storage"`
	Auth     AuthConfig     `toml:"auth"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig кеш результатов поиска
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// StorageConfig файловое хранилище (GridFS)
type StorageConfig struct {
	MongoURI        string `toml:"mongo_uri"`
	Database        string `toml:"database"`
	Bucket          string `toml:"bucket"`
	PublicURL       string `toml:"public_url"`
	UploadWorkers   int    `toml:"upload_workers"`
	MaxUploadSizeMB int    `toml:"max_upload_size_mb"`
}

// AuthConfig параметры JWT
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Load читает конфигурацию из TOML файла
// Секреты можно переопределить переменными окружения, .env подхватывается при наличии
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  60,
		},
		Storage: StorageConfig{
			MongoURI:        "mongodb://localhost:27017",
			Database:        "realty",
			Bucket:          "property_images",
			PublicURL:       "http://localhost:8080",
			UploadWorkers:   4,
			MaxUploadSizeMB: 32,
		},
		Auth: AuthConfig{
			TokenTTLHours: 24,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "realtyservice",
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		cfg.Storage.MongoURI = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_PORT %q: %w", v, err)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid server.http_port: %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return errors.New("database host, dbname and user are required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (or JWT_SECRET env)")
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("invalid auth.token_ttl_hours: %d", c.Auth.TokenTTLHours)
	}
	if c.Storage.MongoURI == "" || c.Storage.Database == "" || c.Storage.Bucket == "" {
		return errors.New("storage mongo_uri, database and bucket are required")
	}
	if c.Storage.UploadWorkers <= 0 {
		return fmt.Errorf("invalid storage.upload_workers: %d", c.Storage.UploadWorkers)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	return nil
}
