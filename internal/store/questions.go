package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
)

type questionRow struct {
	PhaseID       int            `db:"phase_id"`
	ID            int64          `db:"id"`
	Question      string         `db:"question"`
	ChoiceA       string         `db:"choice_a"`
	ChoiceB       string         `db:"choice_b"`
	ChoiceC       sql.NullString `db:"choice_c"`
	ChoiceD       sql.NullString `db:"choice_d"`
	CorrectAnswer string         `db:"correct_answer"`
	Image         sql.NullString `db:"image"`
}

func (r questionRow) choices() []string {
	out := []string{r.ChoiceA, r.ChoiceB}
	for _, c := range []sql.NullString{r.ChoiceC, r.ChoiceD} {
		if c.Valid && c.String != "" {
			out = append(out, c.String)
		}
	}
	return out
}

func nullable(choices []string, i int) sql.NullString {
	if i < len(choices) {
		return sql.NullString{String: choices[i], Valid: true}
	}
	return sql.NullString{}
}

// LoadQuestions returns the published questions of a phase ordered by
// ID. Rows that fail validation are skipped and logged.
func (s *Store) LoadQuestions(ctx context.Context, p phase.ID) ([]questionbank.Question, error) {
	var rows []questionRow
	err := s.db.SelectContext(ctx, &rows, s.q(`
		SELECT phase_id, id, question, choice_a, choice_b, choice_c, choice_d, correct_answer, image
		FROM questions WHERE phase_id = ? ORDER BY id`), int(p))
	if err != nil {
		return nil, mapErr("load questions", err)
	}

	out := make([]questionbank.Question, 0, len(rows))
	for _, r := range rows {
		q, err := questionbank.New(r.ID, phase.ID(r.PhaseID), r.Question, r.choices(), r.CorrectAnswer, r.Image.String)
		if err != nil {
			s.log.Warn("skipping malformed question",
				slog.Int("phase", r.PhaseID),
				slog.Int64("id", r.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

// ReplaceQuestions swaps the whole question set of a phase in one
// transaction.
func (s *Store) ReplaceQuestions(ctx context.Context, p phase.ID, qs []questionbank.Question) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return mapErr("replace questions", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q(`DELETE FROM questions WHERE phase_id = ?`), int(p)); err != nil {
		return mapErr("replace questions", err)
	}

	insert := s.q(`
		INSERT INTO questions (phase_id, id, question, choice_a, choice_b, choice_c, choice_d, correct_answer, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, q := range qs {
		if q.PhaseID != p {
			return fmt.Errorf("replace questions: question %d belongs to phase %d", q.ID, q.PhaseID)
		}
		_, err := tx.ExecContext(ctx, insert,
			int(p), q.ID, q.Text,
			q.Choices[0], q.Choices[1], nullable(q.Choices, 2), nullable(q.Choices, 3),
			q.CorrectChoice, sql.NullString{String: q.Image, Valid: q.Image != ""},
		)
		if err != nil {
			return mapErr("replace questions", err)
		}
	}

	return mapErr("replace questions", tx.Commit())
}

// CountQuestions returns the number of stored questions per phase.
func (s *Store) CountQuestions(ctx context.Context) (map[phase.ID]int, error) {
	var rows []struct {
		PhaseID int `db:"phase_id"`
		N       int `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows, `SELECT phase_id, COUNT(*) AS n FROM questions GROUP BY phase_id`)
	if err != nil {
		return nil, mapErr("count questions", err)
	}
	out := make(map[phase.ID]int, len(rows))
	for _, r := range rows {
		out[phase.ID(r.PhaseID)] = r.N
	}
	return out, nil
}
