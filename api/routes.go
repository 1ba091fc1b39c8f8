package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public and authenticated route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public catalog reads. The listing resolves a principal when a
		// token is present so admins can request drafts.
		r.With(authMiddleware.maybeAuthenticate).Get("/projects", handlers.projectHandler.listProjects())
		r.Get("/projects/featured", handlers.projectHandler.getFeaturedProjects())
		r.Get("/projects/search", handlers.projectHandler.searchProjects())
		r.Get("/projects/{slug}", handlers.projectHandler.getProject())

		// Contact form
		r.Post("/contact/send", handlers.contactHandler.sendContactEmail())

		// Auth
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/auth/me", handlers.authHandler.me())
			r.Get("/projects/user/{userID}", handlers.projectHandler.listUserProjects())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}
