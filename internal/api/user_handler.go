package api

import (
	"net/http"
	"strconv"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/flashcard"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/domain/progress"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
)

// ── Request / Response types ────────────────────────────────────────────────

type FlashcardsResponse struct {
	Flashcards map[phase.ID][]flashcard.Entry `json:"flashcards"`
}

type RemoveFlashcardRequest struct {
	PhaseID    int   `json:"phaseId" example:"2"`
	QuestionID int64 `json:"questionId" example:"14"`
}

type RemoveFlashcardResponse struct {
	Removed int `json:"removed" example:"1"`
}

type ProgressResponse struct {
	Progress []progress.UserProgress `json:"progress"`
}

type HistoryResponse struct {
	History []progress.Attempt `json:"history"`
}

type StatsResponse struct {
	Stats progress.Stats `json:"stats"`
}

type LastGradesResponse struct {
	LastGrades []progress.Attempt `json:"lastGrades"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listFlashcards returns the caller's mistakes grouped by phase.
// @Summary      List flashcards
// @Tags         User
// @Produce      json
// @Success      200  {object}  FlashcardsResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/flashcards [get]
func (h *Handler) listFlashcards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.ledger.List(r.Context(), identity.FromContext(r.Context()))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, FlashcardsResponse{Flashcards: cards})
}

// removeFlashcard deletes one flashcard.
// @Summary      Remove a flashcard
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        body  body      RemoveFlashcardRequest  true  "Card to remove"
// @Success      200   {object}  RemoveFlashcardResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/flashcards/remove [post]
func (h *Handler) removeFlashcard(w http.ResponseWriter, r *http.Request) {
	who := identity.FromContext(r.Context())
	if !who.Authenticated() {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req RemoveFlashcardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PhaseID == 0 || req.QuestionID == 0 {
		respondError(w, http.StatusBadRequest, "missing parameters")
		return
	}

	n, err := h.ledger.Remove(r.Context(), who, phase.ID(req.PhaseID), req.QuestionID)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, RemoveFlashcardResponse{Removed: n})
}

// getProgress returns per-phase progress.
// @Summary      Progress per phase
// @Tags         User
// @Produce      json
// @Success      200  {object}  ProgressResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	rows, err := h.progress.Progress(r.Context(), identity.FromContext(r.Context()))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, ProgressResponse{Progress: rows})
}

// getHistory returns recent attempts, newest first.
// @Summary      Attempt history
// @Tags         User
// @Produce      json
// @Param        limit  query     int  false  "At most 50"
// @Success      200    {object}  HistoryResponse
// @Failure      401    {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/history [get]
func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	attempts, err := h.progress.History(r.Context(), identity.FromContext(r.Context()), limit)
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, HistoryResponse{History: attempts})
}

// getStats returns aggregate statistics.
// @Summary      Statistics
// @Tags         User
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/stats [get]
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	st, err := h.progress.Stats(r.Context(), identity.FromContext(r.Context()))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, StatsResponse{Stats: st})
}

// getLastGrades returns the latest attempt per phase.
// @Summary      Last grade per phase
// @Tags         User
// @Produce      json
// @Success      200  {object}  LastGradesResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/last-grades [get]
func (h *Handler) getLastGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.progress.LastGrades(r.Context(), identity.FromContext(r.Context()))
	if h.handleError(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, LastGradesResponse{LastGrades: grades})
}
