package api

import (
	"net/http"

	"github.com/alexandria/journal-server/internal/api/handlers"
	"github.com/alexandria/journal-server/internal/api/middleware"
	"github.com/alexandria/journal-server/internal/service"
	"github.com/alexandria/journal-server/internal/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *ws.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	questionHandler := handlers.NewQuestionHandler(services.Question)
	answerHandler := handlers.NewAnswerHandler(services.Question)
	userHandler := handlers.NewUserHandler(services.Auth, services.Stats)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/token", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Question routes
			r.Route("/questions", func(r chi.Router) {
				r.Get("/daily", questionHandler.Daily)
				r.Post("/daily/{id}/answer", questionHandler.AnswerDaily)
				r.Post("/user-question/{recipientId}", questionHandler.Ask)
				r.Get("/received", questionHandler.Received)
				r.Get("/sent", questionHandler.Sent)
			})

			// Answer routes
			r.Route("/answers", func(r chi.Router) {
				r.Put("/{id}", answerHandler.Update)
			})

			// User routes
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.Get("/me/stats", userHandler.MyStats)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
