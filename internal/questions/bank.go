package questions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/metrics"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

// Bank serves questions from an in-memory snapshot of its Source.
// Readers never block on a reload; Reload swaps the snapshot whole.
type Bank struct {
	src    Source
	logger *slog.Logger

	reloadMu sync.Mutex // one Reload at a time

	mu       sync.RWMutex
	sets     map[phase.ID]*questionbank.Set
	loadedAt time.Time
}

func NewBank(src Source, logger *slog.Logger) *Bank {
	return &Bank{
		src:    src,
		logger: logger,
		sets:   make(map[phase.ID]*questionbank.Set),
	}
}

// Reload re-reads every phase. A phase that fails to load keeps its
// previous set; the failures are returned joined. Concurrent calls run
// one after the other.
func (b *Bank) Reload(ctx context.Context) error {
	b.reloadMu.Lock()
	defer b.reloadMu.Unlock()

	b.mu.RLock()
	next := make(map[phase.ID]*questionbank.Set, len(b.sets))
	for p, s := range b.sets {
		next[p] = s
	}
	b.mu.RUnlock()

	var errs []error
	for _, ph := range phase.All() {
		qs, err := b.src.LoadQuestions(ctx, ph.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("phase %d: %w", ph.ID, err))
			continue
		}
		set, err := questionbank.NewSet(ph.ID, qs)
		if err != nil {
			errs = append(errs, fmt.Errorf("phase %d: %w", ph.ID, err))
			continue
		}
		next[ph.ID] = set
	}

	b.mu.Lock()
	b.sets = next
	b.loadedAt = time.Now()
	b.mu.Unlock()

	counts := b.Counts()
	for p, n := range counts {
		metrics.SetQuestionsLoaded(int(p), n)
	}
	b.logger.Info("question bank loaded", slog.Any("counts", counts), slog.Int("errors", len(errs)))
	return errors.Join(errs...)
}

func (b *Bank) set(p phase.ID) (*questionbank.Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	s, ok := b.sets[p]
	b.mu.RUnlock()
	if !ok || s.Len() == 0 {
		return nil, fmt.Errorf("questions for phase %d: %w", p, quizerr.ErrNotFound)
	}
	return s, nil
}

// ListQuestions returns the redacted questions of a phase.
func (b *Bank) ListQuestions(ctx context.Context, p phase.ID) ([]questionbank.PublicQuestion, error) {
	s, err := b.set(p)
	if err != nil {
		return nil, err
	}
	return s.Public(), nil
}

// Questions returns the full questions of a phase, answers included.
// Callers must not leak them to clients.
func (b *Bank) Questions(ctx context.Context, p phase.ID) ([]questionbank.Question, error) {
	s, err := b.set(p)
	if err != nil {
		return nil, err
	}
	out := make([]questionbank.Question, len(s.Questions))
	copy(out, s.Questions)
	return out, nil
}

// AnswerKey returns the authoritative answers for ids. Unknown IDs are
// absent from the key.
func (b *Bank) AnswerKey(ctx context.Context, p phase.ID, ids []int64) (questionbank.AnswerKey, error) {
	s, err := b.set(p)
	if err != nil {
		return nil, err
	}
	return s.AnswerKey(ids), nil
}

// Lookup finds one question without validating the phase.
func (b *Bank) Lookup(p phase.ID, id int64) (questionbank.Question, bool) {
	b.mu.RLock()
	s, ok := b.sets[p]
	b.mu.RUnlock()
	if !ok {
		return questionbank.Question{}, false
	}
	return s.Get(id)
}

// Counts returns the number of loaded questions per phase.
func (b *Bank) Counts() map[phase.ID]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[phase.ID]int, len(b.sets))
	for p, s := range b.sets {
		out[p] = s.Len()
	}
	return out
}

func (b *Bank) LoadedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loadedAt
}
