package config

import (
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Storage
	DBDriver    string // "sqlite" or "postgres"
	DatabaseURL string

	// Question bank
	QuestionSource         string // "store" or "file"
	QuestionsDir           string
	QuestionReloadInterval time.Duration // 0 disables scheduled reloads

	// Identity and browser access
	JWTSecret   string
	JWTIssuer   string
	FrontendURL string

	// Optional integrations, disabled when empty
	RabbitMQURI      string
	RabbitMQExchange string
	RedisAddr        string
	IdempotencyTTL   time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:          getenvDefault("SERVER_ADDRESS", ":5000"),
		ShutdownTimeout:        getDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:               parseLevel(os.Getenv("LOG_LEVEL")),
		DBDriver:               oneOf("DB_DRIVER", "sqlite", "postgres"),
		DatabaseURL:            getenvDefault("DATABASE_URL", "drivequiz.db"),
		QuestionSource:         oneOf("QUESTION_SOURCE", "store", "file"),
		QuestionsDir:           getenvDefault("QUESTIONS_DIR", "data"),
		QuestionReloadInterval: getDurationDefault("QUESTION_RELOAD_INTERVAL", 0),
		JWTSecret:              mustGetenv("JWT_SECRET"),
		JWTIssuer:              getenvDefault("JWT_ISSUER", "drivequiz"),
		FrontendURL:            os.Getenv("FRONTEND_URL"),
		RabbitMQURI:            os.Getenv("RABBITMQ_URI"),
		RabbitMQExchange:       getenvDefault("RABBITMQ_EXCHANGE", "drivequiz.events"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		IdempotencyTTL:         getDurationDefault("IDEMPOTENCY_TTL", 10*time.Minute),
	}
}

// LoadStorage reads only the storage keys, for tools that never serve
// requests.
func LoadStorage() (driver, url string) {
	_ = godotenv.Load()
	return oneOf("DB_DRIVER", "sqlite", "postgres"), getenvDefault("DATABASE_URL", "drivequiz.db")
}

// LoadIdentity reads the token signing keys.
func LoadIdentity() (secret, issuer string) {
	_ = godotenv.Load()
	return mustGetenv("JWT_SECRET"), getenvDefault("JWT_ISSUER", "drivequiz")
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	if v == "0" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

// oneOf returns the variable if it is one of allowed, the first allowed
// value if unset, and exits otherwise.
func oneOf(k string, allowed ...string) string {
	v := strings.ToLower(os.Getenv(k))
	if v == "" {
		return allowed[0]
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	log.Fatalf("config: %s=%q must be one of %v", k, v, allowed)
	return ""
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
