package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment. It is
// loaded once in main and passed down; no package reads os.Getenv after boot.
type Config struct {
	Port          string
	DatabaseURL   string
	SessionSecret string
	Env           string // "development" or "production"

	// Number of direct replies eagerly attached to each top-level comment
	// when the client asks for child expansion. Deeper levels are always
	// paged explicitly.
	CommentPreviewLimit int
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env if present, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	return Config{
		Port:                getenv("PORT", "8080"),
		DatabaseURL:         getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=emberlink port=5432 sslmode=disable"),
		SessionSecret:       getenv("SESSION_SECRET", "secret_key_change_me"),
		Env:                 getenv("APP_ENV", "development"),
		CommentPreviewLimit: getenvInt("COMMENT_PREVIEW_LIMIT", 2),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
