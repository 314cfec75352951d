package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/umoyo-health/umoyoai/internal/api"
	"github.com/umoyo-health/umoyoai/internal/api/handlers"
	"github.com/umoyo-health/umoyoai/internal/api/middleware"
)

type RouterConfig struct {
	AuthValidator   middleware.AuthValidator
	ChatHandler     *handlers.ChatHandler
	TrainingHandler *handlers.TrainingHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 1 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.TokenAuth(cfg.AuthValidator))

		r.Post("/ask", cfg.ChatHandler.Ask)
		r.Get("/recent-chats", cfg.ChatHandler.RecentChats)
		r.Get("/sample-questions", cfg.ChatHandler.SampleQuestions)
		r.Get("/sections", cfg.ChatHandler.ListSections)

		r.Route("/handouts", func(r chi.Router) {
			r.Post("/", cfg.TrainingHandler.Generate)
			r.Get("/", cfg.TrainingHandler.List)
			r.Get("/pages", cfg.TrainingHandler.Pages)
			r.Get("/{id}", cfg.TrainingHandler.Get)
			r.Delete("/{id}", cfg.TrainingHandler.Delete)
		})
	})

	return r
}
