package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Имена рендереров рамок.
const (
	RendererCanvas = "canvas"
	RendererGoCV   = "gocv"
)

type Config struct {
	TelegramToken    string        `env:"TELEGRAM_TOKEN"`
	APIBaseURL       string        `env:"API_BASE_URL" envDefault:"http://localhost:5000"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	CarouselInterval time.Duration `env:"CAROUSEL_INTERVAL" envDefault:"2s"`
	HTTPAddr         string        `env:"HTTP_ADDR"`
	Renderer         string        `env:"RENDERER" envDefault:"canvas"`
	Language         string        `env:"LANGUAGE" envDefault:"ru"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить сам.
func (c *Config) Validate() error {
	if c.CarouselInterval <= 0 {
		return fmt.Errorf("CAROUSEL_INTERVAL must be positive, got %s", c.CarouselInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	switch c.Renderer {
	case RendererCanvas, RendererGoCV:
	default:
		return fmt.Errorf("unknown RENDERER %q", c.Renderer)
	}
	return nil
}
