package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// Observability (optional)
	SentryDSN string

	// Recognition services
	VisionAPIURL       string
	VisionAPIKey       string
	VisionModel        string
	OpenFoodFactsURL   string
	FoodDatabaseURL    string
	RecognitionTimeout time.Duration
	UserAgent          string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	return &Config{
		AppName: envString("APP_NAME", "VitaTrack"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/vitatrack.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		SentryDSN: envString("SENTRY_DSN", ""),

		VisionAPIURL:       envString("VISION_API_URL", "https://api.siliconflow.cn/v1/chat/completions"),
		VisionAPIKey:       envString("VISION_API_KEY", ""),
		VisionModel:        envString("VISION_MODEL", "Qwen/Qwen2.5-VL-72B-Instruct"),
		OpenFoodFactsURL:   envString("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
		FoodDatabaseURL:    envString("FOOD_DATABASE_URL", "https://www.foodmate.net"),
		RecognitionTimeout: envDuration("RECOGNITION_TIMEOUT", 30*time.Second),
		UserAgent:          envString("RECOGNITION_USER_AGENT", "VitaTrack/1.0"),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
