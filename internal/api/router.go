package api

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/metrics"
)

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Questions
	mux.HandleFunc("GET /api/phases", h.listPhases)
	mux.HandleFunc("GET /api/questions/phase/{phaseID}", h.listQuestions)

	// Quiz
	mux.HandleFunc("GET /api/quiz/start/{phaseID}", h.startQuiz)
	mux.HandleFunc("POST /api/quiz/submit", h.submitQuiz)

	// User
	mux.HandleFunc("GET /api/user/flashcards", h.listFlashcards)
	mux.HandleFunc("POST /api/user/flashcards/remove", h.removeFlashcard)
	mux.HandleFunc("GET /api/user/progress", h.getProgress)
	mux.HandleFunc("GET /api/user/history", h.getHistory)
	mux.HandleFunc("GET /api/user/stats", h.getStats)
	mux.HandleFunc("GET /api/user/last-grades", h.getLastGrades)
}

type RouterOptions struct {
	Verifier    *identity.Verifier
	FrontendURL string
	Logger      *slog.Logger
}

// NewRouter wires every route behind RequestID → Logging → CORS → Authenticate.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	RegisterRoutes(mux, h)

	var handler http.Handler = mux
	handler = Authenticate(opts.Verifier)(handler)
	handler = CORS(opts.FrontendURL)(handler)
	handler = Logging(opts.Logger)(handler)
	handler = RequestID(handler)
	return handler
}
