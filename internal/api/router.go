package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "elelem/backend/docs"
	"elelem/backend/internal/interfaces"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a chi router with all the application's
// routes.
func NewRouter(authHandler *AuthHandler, chatHandler *ChatHandler, queryHandler *QueryHandler, users interfaces.UserService, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Swagger UI for the generated API documentation.
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Health check endpoint for liveness and readiness probes.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public credential endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.Timeout(10 * time.Second))
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
		})

		// Everything below requires a resolved user identity.
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(users))

			// Standard JSON routes get a request timeout so client
			// connections cannot hang indefinitely.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))

				r.Get("/users/me", authHandler.HandleMe)
				r.Get("/users/{userID}", authHandler.HandleGetUser)

				r.Post("/chats", chatHandler.HandleCreateChat)
				r.Get("/chats", chatHandler.HandleListChats)
				r.Get("/chats/{chatID}", chatHandler.HandleGetChat)
				r.Delete("/chats/{chatID}", chatHandler.HandleDeleteChat)

				r.Post("/queries", queryHandler.HandleCreateQuery)
				r.Get("/queries/history", queryHandler.HandleQueryHistory)
				r.Get("/queries/{queryID}", queryHandler.HandleGetQuery)
			})

			// The message endpoint may hold a streaming connection open for
			// an extended period, so it must NOT have a timeout.
			r.Group(func(r chi.Router) {
				r.Post("/chats/{chatID}/messages", chatHandler.HandleSendMessage)
			})
		})
	})

	return r
}
