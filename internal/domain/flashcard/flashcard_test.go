package flashcard_test

import (
	"testing"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
)

func TestDiff_PartitionsByCorrectness(t *testing.T) {
	now := time.Now()
	results := []grader.ItemResult{
		{QuestionID: 1, UserAnswer: "a", CorrectAnswer: "a", IsCorrect: true},
		{QuestionID: 2, UserAnswer: "b", CorrectAnswer: "c", IsCorrect: false, QuestionText: "Q2"},
		{QuestionID: 3, UserAnswer: "", CorrectAnswer: "d", IsCorrect: false, QuestionText: "Q3"},
	}

	c := flashcard.Diff(5, 2, results, now)

	if len(c.Removals) != 1 || c.Removals[0] != 1 {
		t.Errorf("expected removal of question 1, got %v", c.Removals)
	}
	if len(c.Upserts) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(c.Upserts))
	}
	up := c.Upserts[0]
	if up.UserID != 5 || up.PhaseID != 2 || up.QuestionID != 2 || up.UserWrongAnswer != "b" || up.CorrectAnswer != "c" || up.QuestionText != "Q2" {
		t.Errorf("unexpected upsert: %+v", up)
	}
	if !up.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, up.CreatedAt)
	}
}

func TestDiff_LastAnswerWins(t *testing.T) {
	results := []grader.ItemResult{
		{QuestionID: 4, UserAnswer: "x", IsCorrect: false},
		{QuestionID: 4, UserAnswer: "ok", IsCorrect: true},
		{QuestionID: 6, UserAnswer: "ok", IsCorrect: true},
		{QuestionID: 6, UserAnswer: "y", IsCorrect: false},
	}

	c := flashcard.Diff(1, 1, results, time.Now())

	if len(c.Removals) != 1 || c.Removals[0] != 4 {
		t.Errorf("expected question 4 removed, got %v", c.Removals)
	}
	if len(c.Upserts) != 1 || c.Upserts[0].QuestionID != 6 || c.Upserts[0].UserWrongAnswer != "y" {
		t.Errorf("expected question 6 upserted with %q, got %+v", "y", c.Upserts)
	}
}

func TestGroupByPhase(t *testing.T) {
	entries := []flashcard.Entry{
		{PhaseID: 1, QuestionID: 10},
		{PhaseID: 3, QuestionID: 30},
		{PhaseID: 1, QuestionID: 11},
	}

	g := flashcard.GroupByPhase(entries)

	if len(g) != 2 || len(g[1]) != 2 || len(g[3]) != 1 {
		t.Fatalf("unexpected grouping: %+v", g)
	}
	if g[1][0].QuestionID != 10 || g[1][1].QuestionID != 11 {
		t.Error("expected order within phase to be preserved")
	}
}
