package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	SecretKey    string
	Port         string
	CookieSecure bool
	LogMode      string
	Location     *time.Location

	DBDriver    string
	DBPath      string
	DatabaseURL string

	GymModelPath    string
	DietModelPath   string
	PredictorURL    string
	PredictorAPIKey string
	PredictorRetry  int
	PlanCatalogDir  string

	RedisAddr     string
	RedisPassword string
}

// Load reads the process environment, seeded from .env when present.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	secretKey, err := resolveSecretKey()
	if err != nil {
		return nil, err
	}
	port, err := resolvePort()
	if err != nil {
		return nil, err
	}
	driver, err := resolveDriver()
	if err != nil {
		return nil, err
	}
	retries, err := strconv.Atoi(getEnv("PREDICTOR_MAX_RETRIES", "2"))
	if err != nil || retries < 0 {
		return nil, fmt.Errorf("PREDICTOR_MAX_RETRIES must be a non-negative integer")
	}

	cfg := &Config{
		SecretKey:    secretKey,
		Port:         port,
		CookieSecure: parseBoolEnv("COOKIE_SECURE"),
		LogMode:      getEnv("LOG_MODE", "dev"),
		Location:     loadLocation(getEnv("TZ", "UTC")),

		DBDriver:    driver,
		DBPath:      getEnv("DB_PATH", filepath.Join("data", "fitcoach.db")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		GymModelPath:    getEnv("GYM_MODEL_PATH", filepath.Join("assets", "models", "gym_model.json")),
		DietModelPath:   getEnv("DIET_MODEL_PATH", filepath.Join("assets", "models", "diet_model.json")),
		PredictorURL:    strings.TrimSpace(os.Getenv("PREDICTOR_URL")),
		PredictorAPIKey: strings.TrimSpace(os.Getenv("PREDICTOR_API_KEY")),
		PredictorRetry:  retries,
		PlanCatalogDir:  strings.TrimSpace(os.Getenv("PLAN_CATALOG_DIR")),

		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.DBDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
	}
	return cfg, nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}

	switch strings.ToLower(secret) {
	case "change_me_in_production", "replace_with_at_least_32_random_characters":
		return "", errors.New("SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < 32 {
		return "", errors.New("SECRET_KEY must be at least 32 characters")
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be in range 1..65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDriver() (string, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	switch driver {
	case DriverSQLite, DriverPostgres:
		return driver, nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseBoolEnv(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
