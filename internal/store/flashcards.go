package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
)

// ApplyFlashcards writes one attempt's ledger changes atomically.
// Upserts refresh the answer fields of an existing card but keep its
// creation time.
func (s *Store) ApplyFlashcards(ctx context.Context, userID int64, p phase.ID, c flashcard.Changes) error {
	if c.Empty() {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapErr("apply flashcards", err)
	}
	defer tx.Rollback()

	upsert := s.q(`
		INSERT INTO flashcards (user_id, phase_id, question_id, question_text, correct_answer, user_wrong_answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, phase_id, question_id) DO UPDATE SET
			question_text = excluded.question_text,
			correct_answer = excluded.correct_answer,
			user_wrong_answer = excluded.user_wrong_answer`)
	for _, e := range c.Upserts {
		_, err := tx.ExecContext(ctx, upsert,
			userID, int(p), e.QuestionID, e.QuestionText, e.CorrectAnswer, e.UserWrongAnswer, e.CreatedAt,
		)
		if err != nil {
			return mapErr("apply flashcards", err)
		}
	}

	if len(c.Removals) > 0 {
		query, args, err := sqlx.In(
			`DELETE FROM flashcards WHERE user_id = ? AND phase_id = ? AND question_id IN (?)`,
			userID, int(p), c.Removals,
		)
		if err != nil {
			return mapErr("apply flashcards", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return mapErr("apply flashcards", err)
		}
	}

	return mapErr("apply flashcards", tx.Commit())
}

// ListFlashcards returns a user's cards by phase, newest first within
// a phase.
func (s *Store) ListFlashcards(ctx context.Context, userID int64) ([]flashcard.Entry, error) {
	out := []flashcard.Entry{}
	err := s.db.SelectContext(ctx, &out, s.q(`
		SELECT id, user_id, phase_id, question_id, question_text, correct_answer, user_wrong_answer, created_at
		FROM flashcards WHERE user_id = ?
		ORDER BY phase_id, created_at DESC, id DESC`), userID)
	if err != nil {
		return nil, mapErr("list flashcards", err)
	}
	return out, nil
}

// RemoveFlashcard deletes one card. It reports whether a card existed.
func (s *Store) RemoveFlashcard(ctx context.Context, userID int64, p phase.ID, questionID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM flashcards WHERE user_id = ? AND phase_id = ? AND question_id = ?`),
		userID, int(p), questionID)
	if err != nil {
		return false, mapErr("remove flashcard", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapErr("remove flashcard", err)
	}
	return n > 0, nil
}
