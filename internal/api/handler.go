package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lehrizihabiba/DriveQuiz/internal/quizerr"
	"github.com/lehrizihabiba/DriveQuiz/internal/service"
)

const maxBodyBytes = 1 << 20

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	quiz     *service.QuizService
	ledger   *service.FlashcardLedger
	progress *service.ProgressAggregator
	logger   *slog.Logger
}

func NewHandler(quiz *service.QuizService, ledger *service.FlashcardLedger, progress *service.ProgressAggregator, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:     quiz,
		ledger:   ledger,
		progress: progress,
		logger:   logger,
	}
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid phase"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON reads a bounded JSON body into v. It writes a 400 and
// returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// handleError maps the error taxonomy to a status code. Returns true if
// an error was written.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}

	var verr *quizerr.ValidationError
	switch {
	case errors.Is(err, quizerr.ErrInvalidPhase):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, quizerr.ErrEmptySubmission):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, quizerr.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, quizerr.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestIDFrom(r.Context())),
			slog.String("error", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
