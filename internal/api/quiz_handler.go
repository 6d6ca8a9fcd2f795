package api

import (
	"net/http"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/grader"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/service"
)

type SubmitQuizRequest struct {
	PhaseID   int                   `json:"phaseId" example:"1"`
	Answers   []grader.AnsweredItem `json:"answers"`
	TimeSpent int                   `json:"timeSpent" example:"143"`
}

// submitQuiz grades a finished quiz.
// @Summary      Submit a quiz
// @Description  Scores the answers. Signed-in users also get the attempt, flashcards and progress recorded; bookkeeping failures come back as warnings.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body             body      SubmitQuizRequest  true   "Answers"
// @Param        Idempotency-Key  header    string             false  "Replays the first response for the same key"
// @Success      200              {object}  service.SubmitResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      404              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/quiz/submit [post]
func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.quiz.Submit(r.Context(), identity.FromContext(r.Context()), service.SubmitRequest{
		PhaseID:          phase.ID(req.PhaseID),
		Answers:          req.Answers,
		TimeSpentSeconds: req.TimeSpent,
		IdempotencyKey:   r.Header.Get("Idempotency-Key"),
	})
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
