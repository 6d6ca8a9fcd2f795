package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lehrizihabiba/DriveQuiz/internal/cache"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/quizsession"
	"github.com/lehrizihabiba/DriveQuiz/internal/event"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/metrics"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

const (
	WarningFlashcards = "flashcards could not be updated"
	WarningProgress   = "progress could not be updated"
)

type SubmitRequest struct {
	PhaseID          phase.ID
	Answers          []grader.AnsweredItem
	TimeSpentSeconds int
	IdempotencyKey   string
}

type SubmitResponse struct {
	grader.Result
	Warnings []string `json:"warnings,omitempty"`
}

type PhaseSummary struct {
	ID            phase.ID `json:"id"`
	Name          string   `json:"name"`
	QuestionCount int      `json:"question_count"`
}

type QuizDeps struct {
	Bank        QuestionBank
	Attempts    AttemptStore
	Ledger      *FlashcardLedger
	Progress    *ProgressAggregator
	Publisher   event.Publisher
	Idempotency cache.IdempotencyStore
	Logger      *slog.Logger
}

// QuizService serves questions and turns submissions into a score and,
// for signed-in users, an attempt with its bookkeeping.
type QuizService struct {
	bank        QuestionBank
	attempts    AttemptStore
	ledger      *FlashcardLedger
	progress    *ProgressAggregator
	publisher   event.Publisher
	idempotency cache.IdempotencyStore
	logger      *slog.Logger
	maxDraw     int
}

func NewQuizService(d QuizDeps) *QuizService {
	if d.Idempotency == nil {
		d.Idempotency = cache.Nop{}
	}
	return &QuizService{
		bank:        d.Bank,
		attempts:    d.Attempts,
		ledger:      d.Ledger,
		progress:    d.Progress,
		publisher:   d.Publisher,
		idempotency: d.Idempotency,
		logger:      d.Logger,
		maxDraw:     quizsession.DefaultConfig().MaxQuestions,
	}
}

// Phases lists the catalog with the number of loaded questions.
func (s *QuizService) Phases() []PhaseSummary {
	counts := s.bank.Counts()
	out := make([]PhaseSummary, 0, phase.Max)
	for _, p := range phase.All() {
		out = append(out, PhaseSummary{ID: p.ID, Name: p.Name, QuestionCount: counts[p.ID]})
	}
	return out
}

func (s *QuizService) ListQuestions(ctx context.Context, p phase.ID) ([]questionbank.PublicQuestion, error) {
	return s.bank.ListQuestions(ctx, p)
}

// StartQuiz draws a random selection of a phase's questions. A limit
// of zero uses the default quiz length.
func (s *QuizService) StartQuiz(ctx context.Context, p phase.ID, limit int) ([]questionbank.PublicQuestion, error) {
	if limit <= 0 {
		limit = s.maxDraw
	}
	qs, err := s.bank.Questions(ctx, p)
	if err != nil {
		return nil, err
	}
	drawn := quizsession.Draw(qs, limit, nil)
	out := make([]questionbank.PublicQuestion, len(drawn))
	for i, q := range drawn {
		out[i] = q.Public()
	}
	return out, nil
}

// Submit grades a finished quiz. Guests get the score only. For a
// signed-in user the attempt is stored first; if that fails nothing
// else is written. Flashcards and progress are then updated
// concurrently and their failures come back as warnings.
func (s *QuizService) Submit(ctx context.Context, who identity.Principal, req SubmitRequest) (SubmitResponse, error) {
	started := time.Now()
	resp, err := s.submit(ctx, who, req)

	status := "ok"
	switch {
	case err != nil:
		status = "error"
	case len(resp.Warnings) > 0:
		status = "warning"
	}
	metrics.ObserveSubmission(phaseLabel(req.PhaseID), who.Authenticated(), status, started)
	return resp, err
}

// phaseLabel keeps client-supplied phase ids out of metric labels.
func phaseLabel(p phase.ID) string {
	if !p.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(p))
}

func (s *QuizService) submit(ctx context.Context, who identity.Principal, req SubmitRequest) (SubmitResponse, error) {
	if err := req.PhaseID.Validate(); err != nil {
		return SubmitResponse{}, err
	}
	if len(req.Answers) == 0 {
		return SubmitResponse{}, quizerr.ErrEmptySubmission
	}

	useCache := who.Authenticated() && req.IdempotencyKey != ""
	if useCache {
		if resp, ok := s.replay(ctx, who, req.IdempotencyKey); ok {
			return resp, nil
		}
	}

	key, err := s.bank.AnswerKey(ctx, req.PhaseID, grader.QuestionIDs(req.Answers))
	if err != nil {
		return SubmitResponse{}, err
	}
	result, err := grader.Grade(req.PhaseID, req.Answers, key)
	if err != nil {
		return SubmitResponse{}, err
	}
	resp := SubmitResponse{Result: result}

	if !who.Authenticated() {
		return resp, nil
	}

	timeSpent := req.TimeSpentSeconds
	if timeSpent < 0 {
		timeSpent = 0
	}
	attempt, err := s.attempts.InsertAttempt(ctx, progress.Attempt{
		UserID:           who.UserID,
		PhaseID:          req.PhaseID,
		Score:            result.Score,
		TotalQuestions:   result.TotalQuestions,
		TimeSpentSeconds: timeSpent,
		CompletedAt:      time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to record attempt",
			slog.Int64("user_id", who.UserID),
			slog.Int("phase", int(req.PhaseID)),
			slog.String("error", err.Error()),
		)
		if !errors.Is(err, quizerr.ErrStorage) {
			err = quizerr.Storage("record attempt", err)
		}
		return SubmitResponse{}, err
	}

	var (
		g           errgroup.Group
		ledgerErr   error
		progressErr error
		summary     progress.UserProgress
	)
	g.Go(func() error {
		ledgerErr = s.ledger.Reconcile(ctx, who.UserID, req.PhaseID, result.Results)
		return nil
	})
	g.Go(func() error {
		summary, progressErr = s.progress.RecordAttempt(ctx, attempt)
		return nil
	})
	g.Wait()

	if ledgerErr != nil {
		resp.Warnings = append(resp.Warnings, WarningFlashcards)
		s.logBookkeeping("flashcards", attempt, ledgerErr)
	}
	if progressErr != nil {
		resp.Warnings = append(resp.Warnings, WarningProgress)
		s.logBookkeeping("progress", attempt, progressErr)
		summary.Completed = result.Score == result.TotalQuestions
	}

	s.publish(ctx, attempt, result, summary.Completed)

	if useCache {
		s.remember(ctx, who, req.IdempotencyKey, resp)
	}
	return resp, nil
}

func (s *QuizService) logBookkeeping(component string, a progress.Attempt, err error) {
	metrics.BookkeepingWarning(component)
	s.logger.Error("bookkeeping failed after attempt was stored",
		slog.String("component", component),
		slog.Int64("user_id", a.UserID),
		slog.Int("phase", int(a.PhaseID)),
		slog.Int64("attempt_id", a.ID),
		slog.String("error", err.Error()),
	)
}

func (s *QuizService) publish(ctx context.Context, a progress.Attempt, r grader.Result, completed bool) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishAttemptRecorded(ctx, event.AttemptRecorded{
		AttemptID:      a.ID,
		UserID:         a.UserID,
		PhaseID:        int(a.PhaseID),
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Percentage:     r.Percentage,
		PhaseCompleted: completed,
		OccurredAt:     a.CompletedAt,
	})
	if err != nil {
		s.logger.Warn("failed to publish attempt event",
			slog.Int64("attempt_id", a.ID),
			slog.String("error", err.Error()),
		)
	}
}

// replay returns a previously stored response for the same key. The
// check and the later store are not atomic, so two truly concurrent
// duplicates may both be recorded.
func (s *QuizService) replay(ctx context.Context, who identity.Principal, key string) (SubmitResponse, bool) {
	b, err := s.idempotency.Get(ctx, who.UserID, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("idempotency lookup failed", slog.String("error", err.Error()))
		}
		return SubmitResponse{}, false
	}
	var resp SubmitResponse
	if err := json.Unmarshal(b, &resp); err != nil {
		s.logger.Warn("discarding unreadable idempotent response", slog.String("error", err.Error()))
		return SubmitResponse{}, false
	}
	return resp, true
}

func (s *QuizService) remember(ctx context.Context, who identity.Principal, key string, resp SubmitResponse) {
	b, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("failed to encode response for idempotency", slog.String("error", err.Error()))
		return
	}
	if err := s.idempotency.Put(ctx, who.UserID, key, b); err != nil {
		s.logger.Warn("failed to store idempotent response", slog.String("error", err.Error()))
	}
}
