// Package grader scores a submitted quiz against the authoritative
// answer key. Grading is a pure function: it never touches storage and
// never fails on unknown questions.
package grader

import (
	"math"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
)

// AnsweredItem is one answer as submitted by the client. An empty
// UserAnswer means the countdown expired with nothing selected.
type AnsweredItem struct {
	QuestionID int64  `json:"questionId"`
	UserAnswer string `json:"userAnswer"`
}

// ItemResult is the graded outcome of one AnsweredItem.
type ItemResult struct {
	QuestionID    int64  `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`

	// QuestionText is kept for the flashcard ledger and not sent to clients.
	QuestionText string `json:"-"`
}

// Result is the aggregate outcome of a submission.
type Result struct {
	Phase          phase.ID     `json:"-"`
	Score          int          `json:"score"`
	TotalQuestions int          `json:"totalQuestions"`
	Percentage     int          `json:"percentage"`
	Results        []ItemResult `json:"results"`
}

// Grade scores items against key. Correctness is exact string equality
// with the key's correct choice; a question missing from the key is
// incorrect. TotalQuestions is the number of submitted items.
func Grade(p phase.ID, items []AnsweredItem, key questionbank.AnswerKey) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if len(items) == 0 {
		return Result{}, quizerr.ErrEmptySubmission
	}

	res := Result{
		Phase:          p,
		TotalQuestions: len(items),
		Results:        make([]ItemResult, len(items)),
	}

	for i, item := range items {
		entry, known := key[item.QuestionID]
		correct := known && item.UserAnswer == entry.CorrectChoice
		if correct {
			res.Score++
		}
		res.Results[i] = ItemResult{
			QuestionID:    item.QuestionID,
			UserAnswer:    item.UserAnswer,
			CorrectAnswer: entry.CorrectChoice,
			IsCorrect:     correct,
			QuestionText:  entry.Text,
		}
	}

	res.Percentage = Percentage(res.Score, res.TotalQuestions)
	return res, nil
}

// Percentage returns score/total*100 rounded half away from zero, or 0
// for an empty total.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}

// QuestionIDs lists the IDs referenced by items, in order, without
// duplicates.
func QuestionIDs(items []AnsweredItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.QuestionID]; ok {
			continue
		}
		seen[it.QuestionID] = struct{}{}
		ids = append(ids, it.QuestionID)
	}
	return ids
}
