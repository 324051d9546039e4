// Package router sets up all HTTP routes and middleware chains for the
// brand guidelines API.
package router

import (
	"github.com/go-chi/chi/v5"

	"brandforge/internal/handlers"
	"brandforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up. The rate limiter guards job creation only; polling
// endpoints stay cheap and unthrottled.
func New(jobsHandler *handlers.Jobs, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", jobsHandler.Health)

	r.Route("/api/jobs", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/", jobsHandler.Create)
		r.Get("/{jobID}", jobsHandler.Get)
		r.Get("/{jobID}/pdf", jobsHandler.Download)
	})

	return r
}
