package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// ClientConfig drives the safari-cart client. It is read from the environment only.
type ClientConfig struct {
	APIURL          string        `env:"API_URL" env-default:"http://127.0.0.1:3000/api"`
	APITimeout      time.Duration `env:"API_TIMEOUT" env-default:"8s"`
	CartKey         string        `env:"CART_KEY" env-default:"safari-cart-storage"`
	Storage         string        `env:"CART_STORAGE" env-default:"sqlite"`
	SQLitePath      string        `env:"CART_SQLITE_PATH" env-default:"safari-cart.db"`
	RedisURL        string        `env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	CountryCode     string        `env:"COUNTRY_CODE" env-default:"593"`
	FallbackContact string        `env:"FALLBACK_CONTACT" env-default:"573000000000"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"warn"`
}

func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
