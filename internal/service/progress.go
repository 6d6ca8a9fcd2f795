package service

import (
	"context"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 50
)

// ProgressAggregator maintains per-phase summaries and answers the
// statistics queries over the attempt log.
type ProgressAggregator struct {
	attempts AttemptStore
	progress ProgressStore
}

func NewProgressAggregator(attempts AttemptStore, ps ProgressStore) *ProgressAggregator {
	return &ProgressAggregator{attempts: attempts, progress: ps}
}

// RecordAttempt folds a stored attempt into the user's phase summary.
// A perfect score completes the phase.
func (a *ProgressAggregator) RecordAttempt(ctx context.Context, at progress.Attempt) (progress.UserProgress, error) {
	completed := at.TotalQuestions > 0 && at.Score == at.TotalQuestions
	var out progress.UserProgress
	err := withConflictRetry(ctx, func() error {
		var err error
		out, err = a.progress.UpsertProgress(ctx, at, completed)
		return err
	})
	return out, err
}

func (a *ProgressAggregator) Progress(ctx context.Context, who identity.Principal) ([]progress.UserProgress, error) {
	if !who.Authenticated() {
		return nil, quizerr.ErrUnauthenticated
	}
	return a.progress.ListProgress(ctx, who.UserID)
}

// History returns the newest attempts first. Limits outside 1..50 fall
// back to 50.
func (a *ProgressAggregator) History(ctx context.Context, who identity.Principal, limit int) ([]progress.Attempt, error) {
	if !who.Authenticated() {
		return nil, quizerr.ErrUnauthenticated
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = DefaultHistoryLimit
	}
	return a.attempts.ListAttempts(ctx, who.UserID, limit)
}

func (a *ProgressAggregator) Stats(ctx context.Context, who identity.Principal) (progress.Stats, error) {
	if !who.Authenticated() {
		return progress.Stats{}, quizerr.ErrUnauthenticated
	}
	all, err := a.attempts.ListAttempts(ctx, who.UserID, 0)
	if err != nil {
		return progress.Stats{}, err
	}
	return progress.ComputeStats(all), nil
}

func (a *ProgressAggregator) LastGrades(ctx context.Context, who identity.Principal) ([]progress.Attempt, error) {
	if !who.Authenticated() {
		return nil, quizerr.ErrUnauthenticated
	}
	all, err := a.attempts.ListAttempts(ctx, who.UserID, 0)
	if err != nil {
		return nil, err
	}
	return progress.LastGrades(all), nil
}
