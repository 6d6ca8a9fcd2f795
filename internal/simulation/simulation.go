// Package simulation drives a running server through the flashcard
// lifecycle the way a browser client would: draw a quiz, answer every
// question wrong, check the flashcards, fix one by hand, then retake the
// quiz with the right answers and expect the deck to be empty again.
package simulation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/quizsession"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/worker"
)

// TokenFunc issues a bearer token for a simulated user.
type TokenFunc func(userID int64) (string, error)

type Config struct {
	BaseURL   string
	Phase     phase.ID
	Questions int // per quiz, 0 = server default
	Users     []int64
	Workers   int
	Token     TokenFunc
}

// Outcome is what one simulated user went through.
type Outcome struct {
	UserID          int64
	WrongScore      int
	FlashcardsAfter int // deck size after the all-wrong attempt
	Removed         int
	RightScore      int
	Total           int
	Remaining       int // deck size after the all-right attempt
	Err             error
}

// OK reports whether the run matched the expected lifecycle.
func (o Outcome) OK() bool {
	return o.Err == nil && o.WrongScore == 0 && o.RightScore == o.Total && o.Remaining == 0
}

type Runner struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

func NewRunner(cfg Config, client *http.Client, logger *slog.Logger) *Runner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Runner{cfg: cfg, client: client, log: logger}
}

// Run plays the scenario for every configured user on the worker pool
// and returns the outcomes in user order.
func (r *Runner) Run(ctx context.Context) []Outcome {
	pool := worker.NewPool[Outcome](r.cfg.Workers, len(r.cfg.Users))
	for _, userID := range r.cfg.Users {
		pool.Submit(fmt.Sprint(userID), func() Outcome {
			return r.play(ctx, userID)
		})
	}
	pool.Close()

	byUser := make(map[int64]Outcome, len(r.cfg.Users))
	for res := range pool.Results() {
		byUser[res.Output.UserID] = res.Output
	}

	outcomes := make([]Outcome, 0, len(r.cfg.Users))
	for _, userID := range r.cfg.Users {
		outcomes = append(outcomes, byUser[userID])
	}
	return outcomes
}

func (r *Runner) play(ctx context.Context, userID int64) Outcome {
	out := Outcome{UserID: userID}
	fail := func(step string, err error) Outcome {
		out.Err = fmt.Errorf("user %d: %s: %w", userID, step, err)
		r.log.Warn("simulation step failed", "user_id", userID, "step", step, "error", err)
		return out
	}

	token, err := r.cfg.Token(userID)
	if err != nil {
		return fail("issue token", err)
	}
	c := &client{base: r.cfg.BaseURL, token: token, http: r.client}

	// First attempt: every answer wrong.
	qs, err := c.start(ctx, r.cfg.Phase, r.cfg.Questions)
	if err != nil {
		return fail("start quiz", err)
	}
	session, err := answerAll(r.cfg.Phase, qs, func(q questionbank.PublicQuestion) string {
		return q.Choices[len(q.Choices)-1]
	})
	if err != nil {
		return fail("answer quiz", err)
	}
	wrong, err := c.submit(ctx, r.cfg.Phase, session.Pending())
	if err != nil {
		return fail("submit", err)
	}
	out.WrongScore = wrong.Score
	out.Total = wrong.TotalQuestions

	// Last choice may still be right; the response tells us the key.
	key := make(map[int64]string, len(wrong.Results))
	for _, item := range wrong.Results {
		key[item.QuestionID] = item.CorrectAnswer
	}
	if wrong.Score > 0 {
		session, err = answerAll(r.cfg.Phase, qs, func(q questionbank.PublicQuestion) string {
			for _, choice := range q.Choices {
				if choice != key[q.ID] {
					return choice
				}
			}
			return q.Choices[0]
		})
		if err != nil {
			return fail("answer quiz", err)
		}
		if wrong, err = c.submit(ctx, r.cfg.Phase, session.Pending()); err != nil {
			return fail("resubmit", err)
		}
		out.WrongScore = wrong.Score
	}
	if session, err = session.Complete(wrong.Result); err != nil {
		return fail("complete", err)
	}

	deck, err := c.flashcards(ctx, r.cfg.Phase)
	if err != nil {
		return fail("list flashcards", err)
	}
	out.FlashcardsAfter = len(deck)

	if len(deck) > 0 {
		removed, err := c.remove(ctx, r.cfg.Phase, deck[0].QuestionID)
		if err != nil {
			return fail("remove flashcard", err)
		}
		out.Removed = removed
	}

	// Second attempt on the same questions, all right.
	session, err = answerAll(r.cfg.Phase, qs, func(q questionbank.PublicQuestion) string {
		return key[q.ID]
	})
	if err != nil {
		return fail("answer quiz", err)
	}
	right, err := c.submit(ctx, r.cfg.Phase, session.Pending())
	if err != nil {
		return fail("submit", err)
	}
	out.RightScore = right.Score

	if deck, err = c.flashcards(ctx, r.cfg.Phase); err != nil {
		return fail("list flashcards", err)
	}
	out.Remaining = len(deck)

	r.log.Info("simulation finished",
		"user_id", userID,
		"wrong_score", out.WrongScore,
		"flashcards", out.FlashcardsAfter,
		"right_score", out.RightScore,
		"remaining", out.Remaining,
	)
	return out
}

// answerAll walks a fresh session through every question, picking the
// choice returned by pick, and leaves it in the Submitting state.
func answerAll(p phase.ID, qs []questionbank.PublicQuestion, pick func(questionbank.PublicQuestion) string) (quizsession.Session, error) {
	s, err := quizsession.New(p, quizsession.SessionConfig{MaxQuestions: len(qs)}).Load(qs)
	if err != nil {
		return s, err
	}
	for s.State == quizsession.InProgress {
		q, _ := s.Current()
		if s, err = s.Select(s.Index, pick(q)); err != nil {
			return s, err
		}
		s = s.Next(s.Index)
	}
	if s.State != quizsession.Submitting {
		return s, fmt.Errorf("session ended in %s", s.State)
	}
	return s, nil
}

// ── HTTP client ─────────────────────────────────────────────────────────────

type client struct {
	base  string
	token string
	http  *http.Client
}

type submitResponse struct {
	grader.Result
	Warnings []string `json:"warnings"`
}

func (c *client) start(ctx context.Context, p phase.ID, limit int) ([]questionbank.PublicQuestion, error) {
	path := fmt.Sprintf("/api/quiz/start/%d", p)
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d", limit)
	}
	var resp struct {
		Questions []questionbank.PublicQuestion `json:"questions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

func (c *client) submit(ctx context.Context, p phase.ID, answers []grader.AnsweredItem) (submitResponse, error) {
	body := map[string]any{
		"phaseId":   int(p),
		"answers":   answers,
		"timeSpent": len(answers) * 5,
	}
	var resp submitResponse
	err := c.do(ctx, http.MethodPost, "/api/quiz/submit", body, &resp)
	return resp, err
}

func (c *client) flashcards(ctx context.Context, p phase.ID) ([]flashcard.Entry, error) {
	var resp struct {
		Flashcards map[phase.ID][]flashcard.Entry `json:"flashcards"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/user/flashcards", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Flashcards[p], nil
}

func (c *client) remove(ctx context.Context, p phase.ID, questionID int64) (int, error) {
	body := map[string]any{"phaseId": int(p), "questionId": questionID}
	var resp struct {
		Removed int `json:"removed"`
	}
	err := c.do(ctx, http.MethodPost, "/api/user/flashcards/remove", body, &resp)
	return resp.Removed, err
}

var errStatus = errors.New("unexpected status")

func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s: %d %s", errStatus, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
