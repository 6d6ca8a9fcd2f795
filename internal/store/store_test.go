package store_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.Open(context.Background(), store.Options{Driver: store.DriverSQLite, DSN: path}, log)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustQuestion(t *testing.T, id int64, p phase.ID, choices []string, correct string) questionbank.Question {
	t.Helper()
	q, err := questionbank.New(id, p, "Question text", choices, correct, "")
	if err != nil {
		t.Fatalf("failed to build question: %v", err)
	}
	return q
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := store.Open(context.Background(), store.Options{Driver: "mysql", DSN: "x"}, log)
	if err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestReplaceAndLoadQuestions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	qs := []questionbank.Question{
		mustQuestion(t, 2, 1, []string{"a", "b", "c", "d"}, "c"),
		mustQuestion(t, 1, 1, []string{"yes", "no"}, "no"),
	}
	if err := s.ReplaceQuestions(ctx, 1, qs); err != nil {
		t.Fatalf("failed to replace questions: %v", err)
	}

	got, err := s.LoadQuestions(ctx, 1)
	if err != nil {
		t.Fatalf("failed to load questions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(got))
	}
	if got[0].ID != 1 || len(got[0].Choices) != 2 {
		t.Errorf("expected two-choice question 1 first, got %+v", got[0])
	}
	if len(got[1].Choices) != 4 || got[1].CorrectChoice != "c" {
		t.Errorf("expected four-choice question 2, got %+v", got[1])
	}

	// replacing drops the old set
	if err := s.ReplaceQuestions(ctx, 1, qs[:1]); err != nil {
		t.Fatalf("failed to replace questions: %v", err)
	}
	got, _ = s.LoadQuestions(ctx, 1)
	if len(got) != 1 {
		t.Errorf("expected 1 question after replace, got %d", len(got))
	}

	counts, err := s.CountQuestions(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts[1] != 1 || counts[2] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestInsertAndListAttempts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i := 0; i < 3; i++ {
		a, err := s.InsertAttempt(ctx, progress.Attempt{
			UserID: 7, PhaseID: 2, Score: i, TotalQuestions: 5, TimeSpentSeconds: 30,
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("failed to insert attempt: %v", err)
		}
		if a.ID == 0 {
			t.Error("expected generated ID")
		}
	}
	s.InsertAttempt(ctx, progress.Attempt{UserID: 8, PhaseID: 1, Score: 1, TotalQuestions: 1, CompletedAt: base})

	all, err := s.ListAttempts(ctx, 7, 0)
	if err != nil {
		t.Fatalf("failed to list attempts: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(all))
	}
	if all[0].Score != 2 || all[2].Score != 0 {
		t.Errorf("expected newest first, got scores %d..%d", all[0].Score, all[2].Score)
	}
	if !all[0].CompletedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("expected completed_at round trip, got %v", all[0].CompletedAt)
	}

	limited, _ := s.ListAttempts(ctx, 7, 2)
	if len(limited) != 2 {
		t.Errorf("expected 2 attempts with limit, got %d", len(limited))
	}
}

func TestUpsertProgress_Monotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	steps := []struct {
		score     int
		completed bool
		wantBest  int
		wantDone  bool
	}{
		{score: 5, completed: false, wantBest: 5, wantDone: false},
		{score: 9, completed: true, wantBest: 9, wantDone: true},
		{score: 2, completed: false, wantBest: 9, wantDone: true},
	}

	for i, st := range steps {
		p, err := s.UpsertProgress(ctx, progress.Attempt{UserID: 1, PhaseID: 3, Score: st.score, TotalQuestions: 10, CompletedAt: now}, st.completed)
		if err != nil {
			t.Fatalf("step %d: failed to upsert: %v", i, err)
		}
		if p.AttemptsCount != i+1 {
			t.Errorf("step %d: expected count %d, got %d", i, i+1, p.AttemptsCount)
		}
		if p.BestScore != st.wantBest {
			t.Errorf("step %d: expected best %d, got %d", i, st.wantBest, p.BestScore)
		}
		if p.Completed != st.wantDone {
			t.Errorf("step %d: expected completed %v, got %v", i, st.wantDone, p.Completed)
		}
	}

	list, err := s.ListProgress(ctx, 1)
	if err != nil {
		t.Fatalf("failed to list progress: %v", err)
	}
	if len(list) != 1 || list[0].AttemptsCount != 3 || list[0].BestScore != 9 {
		t.Errorf("unexpected progress rows: %+v", list)
	}
}

func TestApplyFlashcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	first := time.Now().UTC().Add(-time.Hour).Truncate(time.Second)

	err := s.ApplyFlashcards(ctx, 4, 2, flashcard.Changes{Upserts: []flashcard.Entry{
		{QuestionID: 10, QuestionText: "Q10", CorrectAnswer: "a", UserWrongAnswer: "b", CreatedAt: first},
		{QuestionID: 11, QuestionText: "Q11", CorrectAnswer: "c", UserWrongAnswer: "", CreatedAt: first},
	}})
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	// second wrong answer refreshes the card; a correct answer removes the other
	err = s.ApplyFlashcards(ctx, 4, 2, flashcard.Changes{
		Upserts:  []flashcard.Entry{{QuestionID: 10, QuestionText: "Q10", CorrectAnswer: "a", UserWrongAnswer: "d", CreatedAt: time.Now().UTC()}},
		Removals: []int64{11, 99},
	})
	if err != nil {
		t.Fatalf("failed to apply: %v", err)
	}

	cards, err := s.ListFlashcards(ctx, 4)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if cards[0].UserWrongAnswer != "d" {
		t.Errorf("expected refreshed wrong answer %q, got %q", "d", cards[0].UserWrongAnswer)
	}
	if !cards[0].CreatedAt.Equal(first) {
		t.Errorf("expected created_at to be kept at %v, got %v", first, cards[0].CreatedAt)
	}
}

func TestRemoveFlashcard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.ApplyFlashcards(ctx, 4, 1, flashcard.Changes{Upserts: []flashcard.Entry{
		{QuestionID: 3, QuestionText: "Q3", CorrectAnswer: "a", CreatedAt: time.Now().UTC()},
	}})

	removed, err := s.RemoveFlashcard(ctx, 4, 1, 3)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}

	removed, err = s.RemoveFlashcard(ctx, 4, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("expected second removal to report false")
	}
}

func TestUserIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.ApplyFlashcards(ctx, 1, 1, flashcard.Changes{Upserts: []flashcard.Entry{
		{QuestionID: 3, QuestionText: "Q3", CorrectAnswer: "a", CreatedAt: time.Now().UTC()},
	}})

	cards, err := s.ListFlashcards(ctx, 2)
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("expected no cards for other user, got %d", len(cards))
	}

	attempts, err := s.ListAttempts(ctx, 2, 0)
	if err != nil {
		t.Fatalf("failed to list attempts: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("expected empty history, got %d", len(attempts))
	}
}
