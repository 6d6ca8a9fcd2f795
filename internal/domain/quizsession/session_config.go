package quizsession

// SessionConfig holds the per-session constraints.
type SessionConfig struct {
	MaxQuestions       int  // questions drawn per session
	SecondsPerQuestion int  // countdown budget, reset on every advance
	AdvanceOnSelect    bool // true = selecting a choice moves to the next question
}

// DefaultConfig returns the standard exam setup: 10 questions, 20 seconds each.
func DefaultConfig() SessionConfig {
	return SessionConfig{
		MaxQuestions:       10,
		SecondsPerQuestion: 20,
		AdvanceOnSelect:    false,
	}
}

func (c SessionConfig) normalized() SessionConfig {
	d := DefaultConfig()
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = d.MaxQuestions
	}
	if c.SecondsPerQuestion <= 0 {
		c.SecondsPerQuestion = d.SecondsPerQuestion
	}
	return c
}
