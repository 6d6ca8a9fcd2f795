package quizsession

import (
	"errors"
	"fmt"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

// State is the lifecycle stage of a quiz session.
type State int

const (
	Loading State = iota
	InProgress
	Submitting
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case InProgress:
		return "in_progress"
	case Submitting:
		return "submitting"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	ErrAnswerLocked      = errors.New("answer already selected for this question")
	ErrStaleEvent        = errors.New("event targets a question that is no longer current")
	ErrUnknownChoice     = errors.New("choice is not offered by the current question")
	ErrInvalidTransition = errors.New("transition not allowed in current state")
)

// Session is the client-held state of one quiz run. Every transition
// is a method on a value receiver that returns the next Session, so the
// engine has no timers of its own: callers inject Tick and Next events.
//
// Tick and Next carry the index of the question they were raised for.
// When the countdown and the "next" button race, whichever is applied
// first advances the session and the other is discarded as stale.
type Session struct {
	Phase     phase.ID
	Questions []questionbank.PublicQuestion
	State     State
	Index     int
	Remaining int
	Selected  string
	Locked    bool
	Answers   []grader.AnsweredItem
	Result    *grader.Result
	Err       error

	config SessionConfig
}

// New starts a session in the Loading state.
func New(p phase.ID, config SessionConfig) Session {
	return Session{
		Phase:  p,
		State:  Loading,
		config: config.normalized(),
	}
}

// Load moves a Loading session to InProgress on the first question.
// An empty question set fails the session.
func (s Session) Load(questions []questionbank.PublicQuestion) (Session, error) {
	if s.State != Loading {
		return s, fmt.Errorf("%w: load in %s", ErrInvalidTransition, s.State)
	}
	if len(questions) == 0 {
		err := fmt.Errorf("%w: phase %d has no questions", quizerr.ErrNotFound, s.Phase)
		return s.Fail(err), err
	}

	s.Questions = append([]questionbank.PublicQuestion(nil), questions...)
	s.State = InProgress
	s.Index = 0
	s.Remaining = s.config.SecondsPerQuestion
	s.Selected = ""
	s.Locked = false
	s.Answers = nil
	return s, nil
}

// Current returns the question on screen.
func (s Session) Current() (questionbank.PublicQuestion, bool) {
	if s.State != InProgress || s.Index >= len(s.Questions) {
		return questionbank.PublicQuestion{}, false
	}
	return s.Questions[s.Index], true
}

// Select locks choice for the question at index. The first selection
// wins; later ones are rejected with ErrAnswerLocked.
func (s Session) Select(index int, choice string) (Session, error) {
	if s.State != InProgress || index != s.Index {
		return s, ErrStaleEvent
	}
	if s.Locked {
		return s, ErrAnswerLocked
	}
	if !offers(s.Questions[s.Index], choice) {
		return s, ErrUnknownChoice
	}

	s.Selected = choice
	s.Locked = true
	if s.config.AdvanceOnSelect {
		return s.advance(), nil
	}
	return s, nil
}

// Tick consumes one second of the countdown for the question at index.
// Reaching zero behaves like Next.
func (s Session) Tick(index int) Session {
	if s.State != InProgress || index != s.Index {
		return s
	}
	s.Remaining--
	if s.Remaining <= 0 {
		return s.advance()
	}
	return s
}

// Next records the answer for the question at index and advances.
func (s Session) Next(index int) Session {
	if s.State != InProgress || index != s.Index {
		return s
	}
	return s.advance()
}

func (s Session) advance() Session {
	answers := make([]grader.AnsweredItem, len(s.Answers), len(s.Answers)+1)
	copy(answers, s.Answers)
	s.Answers = append(answers, grader.AnsweredItem{
		QuestionID: s.Questions[s.Index].ID,
		UserAnswer: s.Selected,
	})

	s.Selected = ""
	s.Locked = false

	if s.Index == len(s.Questions)-1 {
		s.State = Submitting
		s.Remaining = 0
		return s
	}
	s.Index++
	s.Remaining = s.config.SecondsPerQuestion
	return s
}

// Pending returns a copy of the answers recorded so far.
func (s Session) Pending() []grader.AnsweredItem {
	return append([]grader.AnsweredItem(nil), s.Answers...)
}

// Complete stores the server's graded result.
func (s Session) Complete(res grader.Result) (Session, error) {
	if s.State != Submitting {
		return s, fmt.Errorf("%w: complete in %s", ErrInvalidTransition, s.State)
	}
	s.State = Complete
	s.Result = &res
	return s, nil
}

// Fail ends a non-terminal session with err.
func (s Session) Fail(err error) Session {
	if s.State == Complete || s.State == Failed {
		return s
	}
	s.State = Failed
	s.Err = err
	return s
}

func offers(q questionbank.PublicQuestion, choice string) bool {
	for _, c := range q.Choices {
		if c == choice {
			return true
		}
	}
	return false
}
