package simulation_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/api"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/event"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/questions"
	"github.com/lehrizihabiba/DriveQuiz/internal/service"
	"github.com/lehrizihabiba/DriveQuiz/internal/simulation"
	"github.com/lehrizihabiba/DriveQuiz/internal/store"
)

type staticSource map[phase.ID][]questionbank.Question

func (s staticSource) LoadQuestions(ctx context.Context, p phase.ID) ([]questionbank.Question, error) {
	return s[p], nil
}

func startServer(t *testing.T) (*httptest.Server, *identity.Verifier) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	// Half the questions have the last choice right so the runner has to
	// use the key from the first response.
	src := staticSource{}
	for i := 1; i <= 6; i++ {
		correct := "A"
		if i%2 == 0 {
			correct = "C"
		}
		q, err := questionbank.New(int64(i), 2, fmt.Sprintf("Road sign %d", i), []string{"A", "B", "C"}, correct, "")
		if err != nil {
			t.Fatalf("failed to build question: %v", err)
		}
		src[2] = append(src[2], q)
	}
	bank := questions.NewBank(src, logger)
	if err := bank.Reload(ctx); err != nil {
		t.Fatalf("failed to load bank: %v", err)
	}

	db, err := store.Open(ctx, store.Options{Driver: store.DriverSQLite, DSN: filepath.Join(t.TempDir(), "sim.db")}, logger)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	pub, _ := event.NewEventPublisher("", "drivequiz.events", logger)
	ledger := service.NewFlashcardLedger(db, bank, logger)
	agg := service.NewProgressAggregator(db, db)
	quiz := service.NewQuizService(service.QuizDeps{
		Bank:      bank,
		Attempts:  db,
		Ledger:    ledger,
		Progress:  agg,
		Publisher: pub,
		Logger:    logger,
	})

	verifier := identity.NewVerifier("sim-secret", "drivequiz")
	h := api.NewHandler(quiz, ledger, agg, logger)
	srv := httptest.NewServer(api.NewRouter(h, api.RouterOptions{Verifier: verifier, Logger: logger}))
	t.Cleanup(srv.Close)
	return srv, verifier
}

func TestRunner_FlashcardLifecycle(t *testing.T) {
	srv, verifier := startServer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	runner := simulation.NewRunner(simulation.Config{
		BaseURL:   srv.URL + "/",
		Phase:     2,
		Questions: 4,
		Users:     []int64{7, 8, 9},
		Workers:   2,
		Token: func(userID int64) (string, error) {
			return verifier.Issue(userID, time.Minute)
		},
	}, srv.Client(), logger)

	outcomes := runner.Run(context.Background())
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}

	for i, o := range outcomes {
		if o.UserID != int64(7+i) {
			t.Errorf("outcome %d: expected user %d, got %d", i, 7+i, o.UserID)
		}
		if o.Err != nil {
			t.Errorf("user %d: unexpected error: %v", o.UserID, o.Err)
			continue
		}
		if o.Total != 4 {
			t.Errorf("user %d: expected 4 questions, got %d", o.UserID, o.Total)
		}
		if o.WrongScore != 0 {
			t.Errorf("user %d: expected wrong attempt to score 0, got %d", o.UserID, o.WrongScore)
		}
		if o.FlashcardsAfter != 4 {
			t.Errorf("user %d: expected 4 flashcards, got %d", o.UserID, o.FlashcardsAfter)
		}
		if o.Removed != 1 {
			t.Errorf("user %d: expected 1 removed, got %d", o.UserID, o.Removed)
		}
		if o.RightScore != 4 {
			t.Errorf("user %d: expected right attempt to score 4, got %d", o.UserID, o.RightScore)
		}
		if o.Remaining != 0 {
			t.Errorf("user %d: expected empty deck, got %d", o.UserID, o.Remaining)
		}
		if !o.OK() {
			t.Errorf("user %d: expected OK outcome", o.UserID)
		}
	}
}

func TestRunner_RejectedToken(t *testing.T) {
	srv, _ := startServer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	runner := simulation.NewRunner(simulation.Config{
		BaseURL: srv.URL,
		Phase:   2,
		Users:   []int64{1},
		Workers: 1,
		Token: func(userID int64) (string, error) {
			return "not-a-token", nil
		},
	}, srv.Client(), logger)

	outcomes := runner.Run(context.Background())
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].Err == nil {
		t.Fatal("expected error for invalid token")
	}
	if outcomes[0].OK() {
		t.Error("expected failed outcome")
	}
}
