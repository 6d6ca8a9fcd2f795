package service

import (
	"context"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
)

// QuestionBank is the read side of the question bank.
type QuestionBank interface {
	ListQuestions(ctx context.Context, p phase.ID) ([]questionbank.PublicQuestion, error)
	Questions(ctx context.Context, p phase.ID) ([]questionbank.Question, error)
	AnswerKey(ctx context.Context, p phase.ID, ids []int64) (questionbank.AnswerKey, error)
	Lookup(p phase.ID, id int64) (questionbank.Question, bool)
	Counts() map[phase.ID]int
}

type AttemptStore interface {
	InsertAttempt(ctx context.Context, a progress.Attempt) (progress.Attempt, error)
	ListAttempts(ctx context.Context, userID int64, limit int) ([]progress.Attempt, error)
}

type ProgressStore interface {
	UpsertProgress(ctx context.Context, a progress.Attempt, completed bool) (progress.UserProgress, error)
	ListProgress(ctx context.Context, userID int64) ([]progress.UserProgress, error)
}

type FlashcardStore interface {
	ApplyFlashcards(ctx context.Context, userID int64, p phase.ID, c flashcard.Changes) error
	ListFlashcards(ctx context.Context, userID int64) ([]flashcard.Entry, error)
	RemoveFlashcard(ctx context.Context, userID int64, p phase.ID, questionID int64) (bool, error)
}
