package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_ADDRESS", "SHUTDOWN_TIMEOUT", "DB_DRIVER", "DATABASE_URL", "QUESTION_SOURCE",
		"QUESTION_RELOAD_INTERVAL", "IDEMPOTENCY_TTL", "LOG_LEVEL", "RABBITMQ_URI", "REDIS_ADDR",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := config.Load()

	if cfg.ServerAddress != ":5000" {
		t.Errorf("expected :5000, got %q", cfg.ServerAddress)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.DBDriver != "sqlite" || cfg.DatabaseURL != "drivequiz.db" {
		t.Errorf("unexpected storage defaults: %q %q", cfg.DBDriver, cfg.DatabaseURL)
	}
	if cfg.QuestionSource != "store" || cfg.QuestionReloadInterval != 0 {
		t.Errorf("unexpected question defaults: %q %v", cfg.QuestionSource, cfg.QuestionReloadInterval)
	}
	if cfg.IdempotencyTTL != 10*time.Minute {
		t.Errorf("expected 10m, got %v", cfg.IdempotencyTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("QUESTION_SOURCE", "file")
	t.Setenv("QUESTION_RELOAD_INTERVAL", "5m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.Load()

	if cfg.DBDriver != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DBDriver)
	}
	if cfg.QuestionSource != "file" || cfg.QuestionReloadInterval != 5*time.Minute {
		t.Errorf("unexpected question config: %q %v", cfg.QuestionSource, cfg.QuestionReloadInterval)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}
