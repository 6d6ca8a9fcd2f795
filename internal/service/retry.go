package service

import (
	"context"
	"errors"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

const conflictAttempts = 3

// withConflictRetry reruns fn while it reports ErrConflict.
func withConflictRetry(ctx context.Context, fn func() error) error {
	var err error
	for i := 0; i < conflictAttempts; i++ {
		err = fn()
		if !errors.Is(err, quizerr.ErrConflict) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * 10 * time.Millisecond):
		}
	}
	return err
}
