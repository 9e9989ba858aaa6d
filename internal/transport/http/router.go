package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"quiz-scoring-engine/internal/app"
)

// NewRouter wires the REST and websocket handlers onto a chi router.
func NewRouter(service *app.QuizService, logger *zap.Logger) http.Handler {
	rest := NewRESTHandler(service, logger)
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/quizzes/{quizID}", func(r chi.Router) {
		r.Post("/start", rest.Start)
		r.Post("/submit", rest.Submit)
		r.Get("/ranking", rest.Ranking)
		r.Get("/results", rest.Results)
		r.Get("/stats", rest.Stats)
	})
	return r
}
