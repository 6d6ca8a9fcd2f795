package flashcard

import (
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
)

// Entry marks a question the user most recently answered wrong.
// At most one exists per (user, phase, question).
type Entry struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	PhaseID         phase.ID  `db:"phase_id" json:"phase_id"`
	QuestionID      int64     `db:"question_id" json:"question_id"`
	QuestionText    string    `db:"question_text" json:"question_text"`
	CorrectAnswer   string    `db:"correct_answer" json:"correct_answer"`
	UserWrongAnswer string    `db:"user_wrong_answer" json:"user_wrong_answer"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	Image           string    `db:"-" json:"image"`
}

// Changes is the set of ledger writes derived from one graded attempt.
type Changes struct {
	Upserts  []Entry
	Removals []int64 // question IDs
}

// Empty reports whether there is nothing to write.
func (c Changes) Empty() bool {
	return len(c.Upserts) == 0 && len(c.Removals) == 0
}

// Diff turns graded results into ledger writes. When a question appears
// more than once, its last result decides, matching "most recent answer".
func Diff(userID int64, p phase.ID, results []grader.ItemResult, now time.Time) Changes {
	last := make(map[int64]int, len(results))
	order := make([]int64, 0, len(results))
	for i, r := range results {
		if _, seen := last[r.QuestionID]; !seen {
			order = append(order, r.QuestionID)
		}
		last[r.QuestionID] = i
	}

	var c Changes
	for _, qid := range order {
		r := results[last[qid]]
		if r.IsCorrect {
			c.Removals = append(c.Removals, qid)
			continue
		}
		c.Upserts = append(c.Upserts, Entry{
			UserID:          userID,
			PhaseID:         p,
			QuestionID:      qid,
			QuestionText:    r.QuestionText,
			CorrectAnswer:   r.CorrectAnswer,
			UserWrongAnswer: r.UserAnswer,
			CreatedAt:       now,
		})
	}
	return c
}

// GroupByPhase groups entries, keeping their relative order.
func GroupByPhase(entries []Entry) map[phase.ID][]Entry {
	out := make(map[phase.ID][]Entry)
	for _, e := range entries {
		out[e.PhaseID] = append(out[e.PhaseID], e)
	}
	return out
}
