package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
// Загружается один раз при старте и дальше только читается.
type Config struct {
	ServerPort string `env:"SERVER_PORT"`
	LogLevel   string `env:"LOG_LEVEL"`
	LogFormat  string `env:"LOG_FORMAT"`

	// Во сколько раз запрашиваем больше кандидатов, чем нужно отправить
	OverfetchMultiplier int           `env:"OVERFETCH_MULTIPLIER"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT"`

	Search   SearchConfig
	SMTP     SMTPConfig
	Download DownloadConfig
}

// SearchConfig — настройки Google Custom Search API.
type SearchConfig struct {
	APIKey   string        `env:"GOOGLE_API_KEY"`
	EngineID string        `env:"GOOGLE_CX"`
	BaseURL  string        `env:"SEARCH_BASE_URL"`
	Timeout  time.Duration `env:"SEARCH_TIMEOUT"`
}

// SMTPConfig — настройки почтового релея.
type SMTPConfig struct {
	Host     string        `env:"SMTP_SERVER"`
	Port     int           `env:"SMTP_PORT"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT"`
}

// DownloadConfig — настройки скачивания картинок со сторонних хостов.
type DownloadConfig struct {
	UserAgent   string        `env:"CUSTOM_USER_AGENT"`
	HeadTimeout time.Duration `env:"IMAGE_HEAD_TIMEOUT"`
	GetTimeout  time.Duration `env:"IMAGE_GET_TIMEOUT"`
	MaxBytes    int64         `env:"IMAGE_MAX_BYTES"`
}

const (
	DefaultSearchBaseURL = "https://www.googleapis.com/customsearch/v1"
	defaultMaxImageBytes = 20 << 20
)

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	// required не используем: отсутствие ключей должно всплыть при первом обращении
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults вручную проставляет значения по умолчанию для незаданных полей
func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.OverfetchMultiplier < 1 {
		c.OverfetchMultiplier = 2
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 30 * time.Second
	}

	if c.Search.BaseURL == "" {
		c.Search.BaseURL = DefaultSearchBaseURL
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 10 * time.Second
	}

	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.Username
	}
	if c.SMTP.Timeout <= 0 {
		c.SMTP.Timeout = 30 * time.Second
	}

	if c.Download.HeadTimeout <= 0 {
		c.Download.HeadTimeout = 5 * time.Second
	}
	if c.Download.GetTimeout <= 0 {
		c.Download.GetTimeout = 10 * time.Second
	}
	if c.Download.MaxBytes <= 0 {
		c.Download.MaxBytes = defaultMaxImageBytes
	}
}
