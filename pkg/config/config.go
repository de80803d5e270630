package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	FirebaseProject string        `env:"FIREBASE_PROJECT_ID"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	GatewayRetries  int           `env:"GATEWAY_RETRIES" envDefault:"3"`
	GatewayBackoff  time.Duration `env:"GATEWAY_BACKOFF" envDefault:"100ms"`
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
