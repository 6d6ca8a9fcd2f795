package event_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/event"
)

func TestDisabledPublisherDropsEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p, err := event.NewEventPublisher("", "drivequiz.events", logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Enabled() {
		t.Error("expected publisher to be disabled")
	}

	err = p.PublishAttemptRecorded(context.Background(), event.AttemptRecorded{UserID: 1, OccurredAt: time.Now()})
	if err != nil {
		t.Errorf("expected disabled publish to succeed, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("expected close to succeed, got %v", err)
	}
}
