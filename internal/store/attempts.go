package store

import (
	"context"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
)

// InsertAttempt appends to the attempt log and returns the row with its
// generated ID.
func (s *Store) InsertAttempt(ctx context.Context, a progress.Attempt) (progress.Attempt, error) {
	err := s.db.QueryRowxContext(ctx, s.q(`
		INSERT INTO quiz_attempts (user_id, phase_id, score, total_questions, time_spent, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`),
		a.UserID, int(a.PhaseID), a.Score, a.TotalQuestions, a.TimeSpentSeconds, a.CompletedAt,
	).Scan(&a.ID)
	if err != nil {
		return progress.Attempt{}, mapErr("insert attempt", err)
	}
	return a, nil
}

// ListAttempts returns a user's attempts newest first. A limit of zero
// returns all of them.
func (s *Store) ListAttempts(ctx context.Context, userID int64, limit int) ([]progress.Attempt, error) {
	query := `
		SELECT id, user_id, phase_id, score, total_questions, time_spent, completed_at
		FROM quiz_attempts WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	attempts := []progress.Attempt{}
	if err := s.db.SelectContext(ctx, &attempts, s.q(query), args...); err != nil {
		return nil, mapErr("list attempts", err)
	}
	return attempts, nil
}
