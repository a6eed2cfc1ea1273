package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Classifier ClassifierConfig
	Shield     ShieldConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// ClassifierConfig points at the external relevance-classification service.
type ClassifierConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ShieldConfig tunes the enforcement core.
type ShieldConfig struct {
	BlockPageURL     string
	SweepInterval    time.Duration
	RedirectCooldown time.Duration
	ResultCacheTTL   time.Duration
	ExtraExemptHosts []string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/shield.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Classifier: ClassifierConfig{
			BaseURL: getEnv("CLASSIFIER_BASE_URL", "http://localhost:5001"),
			Timeout: getEnvAsDuration("CLASSIFIER_TIMEOUT", 20*time.Second),
		},
		Shield: ShieldConfig{
			BlockPageURL:     getEnv("BLOCK_PAGE_URL", "chrome-extension://shield/block.html"),
			SweepInterval:    getEnvAsDuration("SWEEP_INTERVAL", 60*time.Second),
			RedirectCooldown: getEnvAsDuration("REDIRECT_COOLDOWN", 5*time.Second),
			ResultCacheTTL:   getEnvAsDuration("RESULT_CACHE_TTL", 60*time.Second),
			ExtraExemptHosts: getEnvAsList("EXTRA_EXEMPT_HOSTS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
