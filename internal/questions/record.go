// Package questions loads the question bank from its sources, keeps an
// in-memory snapshot per phase and imports question files into the
// store.
package questions

import (
	"context"
	"fmt"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
)

// Source yields the raw question list of a phase. An empty list means
// the phase has no published questions.
type Source interface {
	LoadQuestions(ctx context.Context, p phase.ID) ([]questionbank.Question, error)
}

// Record is the on-disk shape of a question in JSON, YAML and XLSX
// files. A zero ID is replaced by the record's 1-based position.
type Record struct {
	ID            int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Question      string   `json:"question" yaml:"question"`
	Choices       []string `json:"choices" yaml:"choices"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// Build validates records into questions. The first invalid record
// fails the whole batch, named by origin and position.
func Build(p phase.ID, origin string, records []Record) ([]questionbank.Question, error) {
	out := make([]questionbank.Question, 0, len(records))
	for i, r := range records {
		id := r.ID
		if id == 0 {
			id = int64(i + 1)
		}
		q, err := questionbank.New(id, p, r.Question, r.Choices, r.CorrectAnswer, r.Image)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", origin, i+1, err)
		}
		out = append(out, q)
	}
	if _, err := questionbank.NewSet(p, out); err != nil {
		return nil, fmt.Errorf("%s: %w", origin, err)
	}
	return out, nil
}
