package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string // listen address
	DSN       string // postgres connection string
	RedisAddr string
	AppEnv    string // "development" | "production"
}

// Load reads a .env file when present, then the environment. Only the
// database DSN is mandatory.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore: plain env vars are fine

	cfg := Config{
		Addr:      getenv("ADDR", ":8080"),
		DSN:       os.Getenv("DATABASE_DSN"),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),
		AppEnv:    getenv("APP_ENV", "development"),
	}
	if cfg.DSN == "" {
		return Config{}, errors.New("config: DATABASE_DSN is required")
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
