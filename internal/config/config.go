package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is parsed once at startup and passed down explicitly; nothing else
// in the service reads the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"3000"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	JWTSecret   string `env:"JWT_SECRET,notEmpty"`
	ClientURL   string `env:"CLIENT_URL"`
}

func Load() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
