package api

import (
	"net/http"
	"strconv"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/questionbank"
	"github.com/lehrizihabiba/DriveQuiz/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type PhasesResponse struct {
	Phases []service.PhaseSummary `json:"phases"`
}

type QuestionsResponse struct {
	Questions []questionbank.PublicQuestion `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listPhases returns the phase catalog.
// @Summary      List phases
// @Description  The fixed phase catalog with the number of loaded questions.
// @Tags         Questions
// @Produce      json
// @Success      200  {object}  PhasesResponse
// @Router       /api/phases [get]
func (h *Handler) listPhases(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PhasesResponse{Phases: h.quiz.Phases()})
}

// listQuestions returns every question of a phase without answers.
// @Summary      List questions of a phase
// @Tags         Questions
// @Produce      json
// @Param        phaseID  path      int  true  "Phase (1-6)"
// @Success      200      {object}  QuestionsResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse  "phase has no questions"
// @Router       /api/questions/phase/{phaseID} [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	p, err := phase.Parse(r.PathValue("phaseID"))
	if h.handleError(w, r, err) {
		return
	}

	qs, err := h.quiz.ListQuestions(r.Context(), p)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, QuestionsResponse{Questions: qs})
}

// startQuiz draws a random selection for a new quiz.
// @Summary      Start a quiz
// @Description  Random selection without repeats, capped at the phase size.
// @Tags         Quiz
// @Produce      json
// @Param        phaseID  path      int  true   "Phase (1-6)"
// @Param        limit    query     int  false  "Number of questions (default 10)"
// @Success      200      {object}  QuestionsResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/quiz/start/{phaseID} [get]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	p, err := phase.Parse(r.PathValue("phaseID"))
	if h.handleError(w, r, err) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	qs, err := h.quiz.StartQuiz(r.Context(), p, limit)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, QuestionsResponse{Questions: qs})
}
