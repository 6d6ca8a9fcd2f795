package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

// FlashcardLedger keeps one card per question a user last answered
// wrong.
type FlashcardLedger struct {
	store  FlashcardStore
	bank   QuestionBank
	logger *slog.Logger
}

func NewFlashcardLedger(s FlashcardStore, bank QuestionBank, logger *slog.Logger) *FlashcardLedger {
	return &FlashcardLedger{store: s, bank: bank, logger: logger}
}

// Reconcile applies one graded attempt: wrong answers upsert a card,
// right answers delete it. Replaying the same results is a no-op.
func (l *FlashcardLedger) Reconcile(ctx context.Context, userID int64, p phase.ID, results []grader.ItemResult) error {
	changes := flashcard.Diff(userID, p, results, time.Now().UTC())
	if changes.Empty() {
		return nil
	}
	return withConflictRetry(ctx, func() error {
		return l.store.ApplyFlashcards(ctx, userID, p, changes)
	})
}

// List returns the caller's cards grouped by phase, newest first.
func (l *FlashcardLedger) List(ctx context.Context, who identity.Principal) (map[phase.ID][]flashcard.Entry, error) {
	if !who.Authenticated() {
		return nil, quizerr.ErrUnauthenticated
	}
	entries, err := l.store.ListFlashcards(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if q, ok := l.bank.Lookup(entries[i].PhaseID, entries[i].QuestionID); ok {
			entries[i].Image = q.Image
		}
	}
	return flashcard.GroupByPhase(entries), nil
}

// Remove deletes one card and returns how many were removed (0 or 1).
func (l *FlashcardLedger) Remove(ctx context.Context, who identity.Principal, p phase.ID, questionID int64) (int, error) {
	if !who.Authenticated() {
		return 0, quizerr.ErrUnauthenticated
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if questionID <= 0 {
		return 0, quizerr.Invalid("questionId", "must be positive")
	}
	removed, err := l.store.RemoveFlashcard(ctx, who.UserID, p, questionID)
	if err != nil {
		return 0, err
	}
	if removed {
		l.logger.Debug("flashcard removed",
			slog.Int64("user_id", who.UserID),
			slog.Int("phase", int(p)),
			slog.Int64("question_id", questionID),
		)
		return 1, nil
	}
	return 0, nil
}
