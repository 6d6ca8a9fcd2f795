package quizsession_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/quizsession"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

func makeQuestions(n int) []questionbank.PublicQuestion {
	qs := make([]questionbank.PublicQuestion, n)
	for i := range qs {
		qs[i] = questionbank.PublicQuestion{
			ID:      int64(i + 1),
			PhaseID: 1,
			Text:    "Question " + string(rune('A'+i)),
			Choices: []string{"a", "b", "c"},
		}
	}
	return qs
}

func startedSession(t *testing.T, n int, config quizsession.SessionConfig) quizsession.Session {
	t.Helper()
	s, err := quizsession.New(1, config).Load(makeQuestions(n))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return s
}

// ── Selection ───────────────────────────────────────────────────────────────

func TestDraw_TakesTenDistinct(t *testing.T) {
	qs := makeQuestions(25)
	drawn := quizsession.Draw(qs, 10, nil)

	if len(drawn) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(drawn))
	}
	seen := map[int64]bool{}
	for _, q := range drawn {
		if seen[q.ID] {
			t.Fatalf("question %d drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestDraw_FewerThanLimitUsesAll(t *testing.T) {
	drawn := quizsession.Draw(makeQuestions(4), 10, nil)
	if len(drawn) != 4 {
		t.Errorf("expected 4 questions (all available), got %d", len(drawn))
	}
}

func TestDraw_Randomizes(t *testing.T) {
	qs := makeQuestions(20)
	rng := rand.New(rand.NewSource(7))

	first := quizsession.Draw(qs, 20, rng)
	for i := 0; i < 10; i++ {
		if !sameOrder(first, quizsession.Draw(qs, 20, rng)) {
			return
		}
	}
	t.Error("expected questions to be randomized across draws")
}

func TestDraw_DoesNotMutateInput(t *testing.T) {
	qs := makeQuestions(10)
	original := append([]questionbank.PublicQuestion(nil), qs...)
	quizsession.Draw(qs, 5, rand.New(rand.NewSource(3)))

	if !sameOrder(original, qs) {
		t.Error("expected input order to be preserved")
	}
}

// ── State machine ───────────────────────────────────────────────────────────

func TestLoad_StartsFirstQuestionWithFullBudget(t *testing.T) {
	s := startedSession(t, 3, quizsession.DefaultConfig())

	if s.State != quizsession.InProgress {
		t.Fatalf("expected in_progress, got %s", s.State)
	}
	if s.Index != 0 || s.Remaining != 20 {
		t.Errorf("expected index 0 with 20s, got index %d with %ds", s.Index, s.Remaining)
	}
}

func TestLoad_EmptyFails(t *testing.T) {
	s, err := quizsession.New(1, quizsession.DefaultConfig()).Load(nil)

	if !errors.Is(err, quizerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if s.State != quizsession.Failed {
		t.Errorf("expected failed, got %s", s.State)
	}
}

func TestSelect_FirstSelectionWins(t *testing.T) {
	s := startedSession(t, 2, quizsession.DefaultConfig())

	s, err := s.Select(0, "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err = s.Select(0, "c")
	if !errors.Is(err, quizsession.ErrAnswerLocked) {
		t.Errorf("expected ErrAnswerLocked, got %v", err)
	}
	if s.Selected != "b" {
		t.Errorf("expected locked choice %q, got %q", "b", s.Selected)
	}
}

func TestSelect_UnknownChoice(t *testing.T) {
	s := startedSession(t, 1, quizsession.DefaultConfig())

	if _, err := s.Select(0, "z"); !errors.Is(err, quizsession.ErrUnknownChoice) {
		t.Errorf("expected ErrUnknownChoice, got %v", err)
	}
}

func TestTick_ExpiryRecordsEmptyAnswerAndResetsBudget(t *testing.T) {
	s := startedSession(t, 2, quizsession.DefaultConfig())

	for i := 0; i < 19; i++ {
		s = s.Tick(0)
	}
	if s.Index != 0 || s.Remaining != 1 {
		t.Fatalf("expected 1s left on question 0, got index %d with %ds", s.Index, s.Remaining)
	}

	s = s.Tick(0)
	if s.Index != 1 {
		t.Fatalf("expected to advance to question 1, got %d", s.Index)
	}
	if s.Remaining != 20 {
		t.Errorf("expected budget reset to 20, got %d", s.Remaining)
	}
	pending := s.Pending()
	if len(pending) != 1 || pending[0].QuestionID != 1 || pending[0].UserAnswer != "" {
		t.Errorf("expected timeout answer for question 1, got %+v", pending)
	}
}

func TestNext_RecordsSelectionAndUnlocks(t *testing.T) {
	s := startedSession(t, 2, quizsession.DefaultConfig())

	s, _ = s.Select(0, "a")
	s = s.Next(0)

	if s.Locked || s.Selected != "" {
		t.Error("expected selection to be cleared for the next question")
	}
	if got := s.Pending(); len(got) != 1 || got[0].UserAnswer != "a" {
		t.Errorf("expected recorded answer %q, got %+v", "a", got)
	}
}

func TestRace_LosingTriggerIsDiscarded(t *testing.T) {
	s := startedSession(t, 3, quizsession.DefaultConfig())
	for i := 0; i < 19; i++ {
		s = s.Tick(0)
	}

	// "next" wins; the timer's final tick for question 0 arrives late.
	s = s.Next(0)
	s = s.Tick(0)

	if s.Index != 1 {
		t.Fatalf("expected to be on question 1, got %d", s.Index)
	}
	if s.Remaining != 20 {
		t.Errorf("expected late tick to be discarded, remaining %d", s.Remaining)
	}
	if len(s.Pending()) != 1 {
		t.Errorf("expected exactly one recorded answer, got %d", len(s.Pending()))
	}
}

func TestLastQuestionMovesToSubmitting(t *testing.T) {
	s := startedSession(t, 2, quizsession.DefaultConfig())

	s = s.Next(0)
	s = s.Next(1)

	if s.State != quizsession.Submitting {
		t.Fatalf("expected submitting, got %s", s.State)
	}
	if len(s.Pending()) != 2 {
		t.Errorf("expected 2 answers, got %d", len(s.Pending()))
	}

	// events after the last question are ignored
	if after := s.Tick(1); after.State != quizsession.Submitting || len(after.Pending()) != 2 {
		t.Error("expected tick after last question to be discarded")
	}
}

func TestAdvanceOnSelect(t *testing.T) {
	config := quizsession.DefaultConfig()
	config.AdvanceOnSelect = true
	s := startedSession(t, 2, config)

	s, err := s.Select(0, "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Index != 1 {
		t.Errorf("expected early advance to question 1, got %d", s.Index)
	}
}

func TestTransitionsArePure(t *testing.T) {
	s := startedSession(t, 3, quizsession.DefaultConfig())
	s1 := s.Next(0)
	_ = s1.Next(1)

	if len(s1.Pending()) != 1 {
		t.Errorf("expected earlier value to keep 1 answer, got %d", len(s1.Pending()))
	}
	if s.Index != 0 || len(s.Pending()) != 0 {
		t.Error("expected original session to be unchanged")
	}
}

func TestCompleteAndFail(t *testing.T) {
	s := startedSession(t, 1, quizsession.DefaultConfig())

	if _, err := s.Complete(grader.Result{}); !errors.Is(err, quizsession.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition before submitting, got %v", err)
	}

	s = s.Next(0)
	done, err := s.Complete(grader.Result{Score: 1, TotalQuestions: 1, Percentage: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.State != quizsession.Complete || done.Result.Score != 1 {
		t.Errorf("unexpected completed session: %+v", done)
	}

	failed := s.Fail(errors.New("network down"))
	if failed.State != quizsession.Failed || failed.Err == nil {
		t.Errorf("expected failed session, got %s", failed.State)
	}
	if again := done.Fail(errors.New("late")); again.State != quizsession.Complete {
		t.Error("expected terminal state to be sticky")
	}
}

func sameOrder(a, b []questionbank.PublicQuestion) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
