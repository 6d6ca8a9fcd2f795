package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/api"
	"github.com/lehrizihabiba/DriveQuiz/internal/cache"
	"github.com/lehrizihabiba/DriveQuiz/internal/event"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/infrastructure/config"
	"github.com/lehrizihabiba/DriveQuiz/internal/questions"
	"github.com/lehrizihabiba/DriveQuiz/internal/service"
	"github.com/lehrizihabiba/DriveQuiz/internal/store"

	_ "github.com/lehrizihabiba/DriveQuiz/docs" // swagger docs
)

// @title           DriveQuiz API
// @version         1.0
// @description     Driving-exam quiz backend: phases, quizzes, scoring, flashcards and progress.

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	ctx := context.Background()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(ctx, store.Options{Driver: cfg.DBDriver, DSN: cfg.DatabaseURL}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var src questions.Source = db
	if cfg.QuestionSource == "file" {
		src = questions.FileSource{Dir: cfg.QuestionsDir}
	}
	bank := questions.NewBank(src, logger)
	if err := bank.Reload(ctx); err != nil {
		// partial banks still serve the phases that loaded
		logger.Warn("question bank loaded with errors", "error", err)
	}
	if cfg.QuestionReloadInterval > 0 {
		reloader := questions.NewReloader(bank, cfg.QuestionReloadInterval, logger)
		if err := reloader.Start(); err != nil {
			logger.Error("failed to schedule question reload", "error", err)
			os.Exit(1)
		}
		defer reloader.Stop()
	}

	publisher, err := event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange, logger)
	if err != nil {
		logger.Error("failed to start event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	var idem cache.IdempotencyStore = cache.Nop{}
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		idem = cache.NewRedisIdempotency(client, cfg.IdempotencyTTL)
	}

	ledger := service.NewFlashcardLedger(db, bank, logger)
	progress := service.NewProgressAggregator(db, db)
	quiz := service.NewQuizService(service.QuizDeps{
		Bank:        bank,
		Attempts:    db,
		Ledger:      ledger,
		Progress:    progress,
		Publisher:   publisher,
		Idempotency: idem,
		Logger:      logger,
	})
	handler := api.NewHandler(quiz, ledger, progress, logger)

	// ── Routes and middleware ───────────────────────────────────────
	router := api.NewRouter(handler, api.RouterOptions{
		Verifier:    identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		FrontendURL: cfg.FrontendURL,
		Logger:      logger,
	})

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "db_driver", cfg.DBDriver, "question_source", cfg.QuestionSource)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
