package progress

import (
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
)

// Attempt is one finished, scored quiz. Attempts are append-only.
type Attempt struct {
	ID               int64     `db:"id" json:"id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	PhaseID          phase.ID  `db:"phase_id" json:"phase_id"`
	Score            int       `db:"score" json:"score"`
	TotalQuestions   int       `db:"total_questions" json:"total_questions"`
	TimeSpentSeconds int       `db:"time_spent" json:"time_spent"`
	CompletedAt      time.Time `db:"completed_at" json:"completed_at"`
}

// Percent is the attempt score as a percentage of its own length.
func (a Attempt) Percent() float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) * 100 / float64(a.TotalQuestions)
}

// UserProgress is the per user and phase summary.
//
// Invariants: AttemptsCount grows by exactly one per recorded attempt,
// BestScore never decreases, Completed never goes back to false.
type UserProgress struct {
	UserID        int64     `db:"user_id" json:"user_id"`
	PhaseID       phase.ID  `db:"phase_id" json:"phase_id"`
	Completed     bool      `db:"completed" json:"completed"`
	BestScore     int       `db:"best_score" json:"best_score"`
	AttemptsCount int       `db:"attempts_count" json:"attempts_count"`
	LastAttemptAt time.Time `db:"last_attempt_at" json:"last_attempt_at"`
}

// Stats are cross-phase aggregates over a user's attempt log.
type Stats struct {
	TotalAttempts       int     `json:"total_attempts"`
	AverageScorePercent float64 `json:"average_score"`
	BestScorePercent    float64 `json:"best_score"`
	TotalTimeSpent      int     `json:"total_time"`
}

// ComputeStats aggregates per-attempt percentages so that attempts of
// different lengths are comparable.
func ComputeStats(attempts []Attempt) Stats {
	var st Stats
	if len(attempts) == 0 {
		return st
	}

	var sum float64
	for i, a := range attempts {
		pct := a.Percent()
		sum += pct
		if i == 0 || pct > st.BestScorePercent {
			st.BestScorePercent = pct
		}
		st.TotalTimeSpent += a.TimeSpentSeconds
	}
	st.TotalAttempts = len(attempts)
	st.AverageScorePercent = sum / float64(len(attempts))
	return st
}

// LastGrades picks the most recent attempt per phase, ordered by phase.
// Ties on CompletedAt go to the highest attempt ID.
func LastGrades(attempts []Attempt) []Attempt {
	latest := make(map[phase.ID]Attempt)
	for _, a := range attempts {
		cur, ok := latest[a.PhaseID]
		if !ok || newer(a, cur) {
			latest[a.PhaseID] = a
		}
	}

	out := make([]Attempt, 0, len(latest))
	for p := phase.Min; p <= phase.Max; p++ {
		if a, ok := latest[p]; ok {
			out = append(out, a)
		}
	}
	return out
}

func newer(a, b Attempt) bool {
	if !a.CompletedAt.Equal(b.CompletedAt) {
		return a.CompletedAt.After(b.CompletedAt)
	}
	return a.ID > b.ID
}
