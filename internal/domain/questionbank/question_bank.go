package questionbank

import (
	"fmt"
	"strings"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

const (
	MinChoices = 2
	MaxChoices = 4
)

// Question is a published multiple-choice question. It is only built
// through New, so every Question in memory already satisfies the shape
// rules and read paths never need to pad or filter choices.
type Question struct {
	ID            int64
	PhaseID       phase.ID
	Text          string
	Choices       []string
	CorrectChoice string
	Image         string // optional, relative resource path
}

// PublicQuestion is the redacted view served to clients.
type PublicQuestion struct {
	ID      int64    `json:"id"`
	PhaseID phase.ID `json:"phase_id"`
	Text    string   `json:"question"`
	Choices []string `json:"choices"`
	Image   string   `json:"image"`
}

// KeyEntry is the authoritative answer for one question.
type KeyEntry struct {
	CorrectChoice string
	Text          string
	Image         string
}

// AnswerKey maps question IDs to their authoritative answers.
type AnswerKey map[int64]KeyEntry

// New validates and builds a Question.
func New(id int64, p phase.ID, text string, choices []string, correct, image string) (Question, error) {
	if err := p.Validate(); err != nil {
		return Question{}, err
	}
	if id <= 0 {
		return Question{}, quizerr.Invalid("id", "must be positive")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, quizerr.Invalid("question", "cannot be empty")
	}
	if len(choices) < MinChoices || len(choices) > MaxChoices {
		return Question{}, quizerr.Invalid("choices", fmt.Sprintf("need %d-%d choices, got %d", MinChoices, MaxChoices, len(choices)))
	}

	cs := make([]string, len(choices))
	found := false
	for i, c := range choices {
		if strings.TrimSpace(c) == "" {
			return Question{}, quizerr.Invalid("choices", fmt.Sprintf("choice %d is empty", i+1))
		}
		cs[i] = c
		if c == correct {
			found = true
		}
	}
	if !found {
		return Question{}, quizerr.Invalid("correct_answer", "must match one of the choices")
	}

	return Question{
		ID:            id,
		PhaseID:       p,
		Text:          text,
		Choices:       cs,
		CorrectChoice: correct,
		Image:         image,
	}, nil
}

// Public strips the correct answer.
func (q Question) Public() PublicQuestion {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	return PublicQuestion{
		ID:      q.ID,
		PhaseID: q.PhaseID,
		Text:    q.Text,
		Choices: choices,
		Image:   q.Image,
	}
}

// Set is the question set of a single phase.
type Set struct {
	Phase     phase.ID
	Questions []Question
	byID      map[int64]int
}

// NewSet builds a Set, rejecting questions from another phase and
// duplicate IDs.
func NewSet(p phase.ID, questions []Question) (*Set, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Set{
		Phase:     p,
		Questions: make([]Question, 0, len(questions)),
		byID:      make(map[int64]int, len(questions)),
	}
	for _, q := range questions {
		if q.PhaseID != p {
			return nil, quizerr.Invalid("phase_id", fmt.Sprintf("question %d belongs to phase %d, not %d", q.ID, q.PhaseID, p))
		}
		if _, dup := s.byID[q.ID]; dup {
			return nil, quizerr.Invalid("id", fmt.Sprintf("duplicate question id %d in phase %d", q.ID, p))
		}
		s.byID[q.ID] = len(s.Questions)
		s.Questions = append(s.Questions, q)
	}
	return s, nil
}

func (s *Set) Len() int {
	return len(s.Questions)
}

// Get looks a question up by ID.
func (s *Set) Get(id int64) (Question, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Question{}, false
	}
	return s.Questions[i], true
}

// Public returns the redacted questions in bank order.
func (s *Set) Public() []PublicQuestion {
	out := make([]PublicQuestion, len(s.Questions))
	for i, q := range s.Questions {
		out[i] = q.Public()
	}
	return out
}

// AnswerKey returns key entries for the requested IDs. Unknown IDs are
// simply absent; grading treats them as incorrect.
func (s *Set) AnswerKey(ids []int64) AnswerKey {
	key := make(AnswerKey, len(ids))
	for _, id := range ids {
		if q, ok := s.Get(id); ok {
			key[id] = KeyEntry{CorrectChoice: q.CorrectChoice, Text: q.Text, Image: q.Image}
		}
	}
	return key
}
