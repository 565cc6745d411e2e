// Package router sets up all HTTP routes and middleware chains for the
// content API. It organizes routes into a public reader group and an
// editorial group with appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"coffeesmile/internal/handlers"
	"coffeesmile/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. adminToken guards the editorial group;
// when empty no caller can reach it.
func New(public *handlers.Public, admin *handlers.Admin, adminToken string, writeLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Privileged(adminToken))

	// Public reader surface. Privileged callers hitting these routes
	// get the extended view (drafts, status filter).
	r.Get("/health", public.Health)
	r.Get("/posts", public.ListPosts)
	r.Get("/posts/{slug}", public.GetPost)
	r.Get("/categories", public.Categories)
	r.Get("/feed.xml", public.Feed)
	r.Get("/sitemap.xml", public.Sitemap)

	// Editorial surface. Bearer token required; writes rate-limited,
	// reads are not.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequirePrivileged)

		w := r
		if writeLimiter != nil {
			w = r.With(writeLimiter.Middleware)
		}

		r.Get("/posts", admin.ListPosts)
		r.Get("/posts/{id}", admin.GetPost)
		w.Post("/posts", admin.CreatePost)
		w.Put("/posts/{id}", admin.UpdatePost)
		w.Patch("/posts/{id}", admin.PatchStatus)
		w.Delete("/posts/{id}", admin.DeletePost)

		w.Post("/categories", admin.CreateCategory)
		w.Put("/categories/{id}", admin.UpdateCategory)
		w.Delete("/categories/{id}", admin.DeleteCategory)
	})

	return r
}

// DefaultWriteLimiter returns the rate limiter used for editorial
// writes: 60 requests per minute per client IP.
func DefaultWriteLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(60, time.Minute)
}
