package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hamdi-4u/TaskManagerAPI/internal/api/handlers"
	"github.com/hamdi-4u/TaskManagerAPI/internal/auth"
	"github.com/hamdi-4u/TaskManagerAPI/internal/services"
	"github.com/hamdi-4u/TaskManagerAPI/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	eventService services.EventServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())

			r.Get("/auth/me", authHandler.GetMe)

			// Live event feed
			r.Get("/ws", wsHandler.Serve)

			r.Route("/users", func(r chi.Router) {
				r.With(auth.RequireAdmin).Get("/", userHandler.GetAll)
				r.With(auth.RequireAdmin).Post("/", userHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", userHandler.Get) // admin or self, checked in handler
					r.With(auth.RequireAdmin).Put("/", userHandler.Update)
					r.With(auth.RequireAdmin).Delete("/", userHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.GetAll) // role decides the visible set
				r.With(auth.RequireAdmin).Post("/", taskHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Put("/", taskHandler.Update) // field policy enforced by the service
					r.With(auth.RequireAdmin).Delete("/", taskHandler.Delete)
				})
			})

			r.With(auth.RequireAdmin).Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
