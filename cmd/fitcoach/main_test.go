package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terraincognita07/fitcoach/internal/config"
	"github.com/terraincognita07/fitcoach/internal/logger"
	"github.com/terraincognita07/fitcoach/internal/predict"
)

func bundledModelPath(name string) string {
	return filepath.Join("..", "..", "assets", "models", name)
}

func TestLoadPredictorsFromBundledModels(t *testing.T) {
	t.Parallel()

	pair, err := loadPredictors(&config.Config{
		GymModelPath:  bundledModelPath("gym_model.json"),
		DietModelPath: bundledModelPath("diet_model.json"),
	})
	if err != nil {
		t.Fatalf("loadPredictors() unexpected error: %v", err)
	}
	if _, ok := pair.Gym.(*predict.TreeEnsemble); !ok {
		t.Fatalf("expected tree ensemble gym model, got %T", pair.Gym)
	}
}

func TestLoadPredictorsRejectsSwappedModels(t *testing.T) {
	t.Parallel()

	_, err := loadPredictors(&config.Config{
		GymModelPath:  bundledModelPath("diet_model.json"),
		DietModelPath: bundledModelPath("gym_model.json"),
	})
	if err == nil || !strings.Contains(err.Error(), "features") {
		t.Fatalf("expected feature count error, got %v", err)
	}
}

func TestLoadPredictorsPrefersRemoteServer(t *testing.T) {
	t.Parallel()

	pair, err := loadPredictors(&config.Config{
		PredictorURL:  "http://models.local",
		GymModelPath:  filepath.Join(t.TempDir(), "missing.json"),
		DietModelPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err != nil {
		t.Fatalf("loadPredictors() unexpected error: %v", err)
	}
	if _, ok := pair.Diet.(*predict.HTTPModel); !ok {
		t.Fatalf("expected HTTP diet model, got %T", pair.Diet)
	}
}

func TestNewLoginLimiterWithoutRedis(t *testing.T) {
	t.Parallel()

	limiter, closeLimiter, err := newLoginLimiter(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("newLoginLimiter() unexpected error: %v", err)
	}
	defer closeLimiter()
	if limiter != nil {
		t.Fatalf("expected nil limiter without REDIS_ADDR, got %T", limiter)
	}
}

func TestRunCommandResetPassword(t *testing.T) {
	t.Parallel()

	database, err := openDatabase(&config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "fitcoach.db"),
	}, logger.Nop())
	if err != nil {
		t.Fatalf("openDatabase() unexpected error: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	var output bytes.Buffer
	if err := runCommand(database, []string{"reset-password"}, nil, &output); err == nil {
		t.Fatal("expected usage error without username")
	}
	if err := runCommand(database, []string{"frobnicate"}, nil, &output); err == nil {
		t.Fatal("expected unknown command error")
	}
	if err := runCommand(database, []string{"reset-password", "nobody"}, nil, &output); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}
