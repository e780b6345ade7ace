package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env            string        `validate:"required,oneof=local dev prod"`
	HTTPAddr       string        `validate:"required"`
	BackendURL     string        `validate:"required,url"`
	BackendTimeout time.Duration `validate:"gte=0"`
	Timezone       string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`

	// Location is resolved from Timezone by Load.
	Location *time.Location `validate:"-"`
}

var validate = validator.New()

// Load reads the configuration from the environment. The caller is expected
// to have loaded .env beforehand.
func Load() (*Config, error) {
	const op = "config.Load"

	cfg := &Config{
		Env:        getenv("ENV", EnvLocal),
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		BackendURL: getenv("BACKEND_URL", "http://127.0.0.1:5000"),
		Timezone:   getenv("TIMEZONE", "Asia/Taipei"),
		LogLevel:   strings.ToLower(getenv("LOG_LEVEL", "info")),
	}

	timeout, err := time.ParseDuration(getenv("BACKEND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("%s: BACKEND_TIMEOUT: %w", op, err)
	}
	cfg.BackendTimeout = timeout

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: TIMEZONE: %w", op, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
