// Package config читает настройки бота из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	BotToken    string        `env:"BOT_TOKEN,required,notEmpty"`
	HFToken     string        `env:"HF_TOKEN,required,notEmpty"`
	HFModelID   string        `env:"HF_MODEL_ID" envDefault:"openai/gpt-oss-120b"`
	LLMBaseURL  string        `env:"LLM_BASE_URL" envDefault:"https://router.huggingface.co/v1"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
	LeadsChatID string        `env:"LEADS_CHAT_ID"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"INFO"`
	AdminIDs    []int64       `env:"ADMIN_CHAT_IDS" envSeparator:","`
	FunnelDSN   string        `env:"FUNNEL_SQLITE_DSN"`
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
}

// Load разбирает окружение, проверяет уровень логирования и таймаут LLM.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BotToken = strings.TrimSpace(cfg.BotToken)
	cfg.HFToken = strings.TrimSpace(cfg.HFToken)
	cfg.HFModelID = strings.TrimSpace(cfg.HFModelID)
	cfg.LeadsChatID = strings.TrimSpace(cfg.LeadsChatID)
	if _, err := cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	if cfg.LLMTimeout <= 0 {
		return Config{}, fmt.Errorf("LLM_TIMEOUT must be positive, got %s", cfg.LLMTimeout)
	}
	return cfg, nil
}

// SlogLevel переводит LOG_LEVEL (DEBUG, INFO, WARN, ERROR) в уровень slog.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
