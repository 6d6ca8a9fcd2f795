package store

import (
	"context"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
)

// UpsertProgress folds one attempt into the (user, phase) summary in a
// single statement: the count goes up by one, the best score only
// rises and completion is sticky.
func (s *Store) UpsertProgress(ctx context.Context, a progress.Attempt, completed bool) (progress.UserProgress, error) {
	p := progress.UserProgress{
		UserID:        a.UserID,
		PhaseID:       a.PhaseID,
		LastAttemptAt: a.CompletedAt,
	}
	err := s.db.QueryRowxContext(ctx, s.q(`
		INSERT INTO user_progress (user_id, phase_id, completed, best_score, attempts_count, last_attempt_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT (user_id, phase_id) DO UPDATE SET
			attempts_count = user_progress.attempts_count + 1,
			best_score = CASE WHEN excluded.best_score > user_progress.best_score
				THEN excluded.best_score ELSE user_progress.best_score END,
			completed = (user_progress.completed OR excluded.completed),
			last_attempt_at = excluded.last_attempt_at
		RETURNING completed, best_score, attempts_count`),
		a.UserID, int(a.PhaseID), completed, a.Score, a.CompletedAt,
	).Scan(&p.Completed, &p.BestScore, &p.AttemptsCount)
	if err != nil {
		return progress.UserProgress{}, mapErr("upsert progress", err)
	}
	return p, nil
}

// ListProgress returns every phase summary of a user ordered by phase.
func (s *Store) ListProgress(ctx context.Context, userID int64) ([]progress.UserProgress, error) {
	out := []progress.UserProgress{}
	err := s.db.SelectContext(ctx, &out, s.q(`
		SELECT user_id, phase_id, completed, best_score, attempts_count, last_attempt_at
		FROM user_progress WHERE user_id = ? ORDER BY phase_id`), userID)
	if err != nil {
		return nil, mapErr("list progress", err)
	}
	return out, nil
}
