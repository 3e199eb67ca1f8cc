// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/middleware"
)

// Router assembles the HTTP surface.
type Router struct {
	handler *Handler
	authMW  *auth.Middleware
	chiMW   *ChiMiddleware
}

// NewRouter creates a router from its three dependency bundles.
func NewRouter(handler *Handler, authMW *auth.Middleware, chiMW *ChiMiddleware) *Router {
	return &Router{
		handler: handler,
		authMW:  authMW,
		chiMW:   chiMW,
	}
}

// Setup configures all HTTP routes.
//
// Route groups and their guards:
//   - /api/health, /metrics: open
//   - /api/auth/*: open, login behind the strict limiter
//   - /api/invites/validate/{token}: open (registration screen probe)
//   - /api/lists, /api/todos, /api/ws, /api/auth/verify: bearer token
//   - /api/invites, /api/users: bearer token + store-checked admin
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(router.chiMW.CORS())

	r.Get("/api/health", router.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/admin-exists", router.handler.AdminExists)
		r.Post("/setup", router.handler.Setup)
		r.With(router.chiMW.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/register", router.handler.Register)

		r.With(router.authMW.RequireAuth).Get("/verify", router.handler.Verify)
	})

	r.Route("/api/lists", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)
		r.Use(router.authMW.RequireAuth)

		r.Post("/", router.handler.CreateList)
		r.Get("/{id}", router.handler.GetList)
		r.Delete("/{id}", router.handler.DeleteList)
		r.Get("/{id}/rollover", router.handler.GetRollover)
		r.Put("/{id}/rollover", router.handler.UpdateRollover)
		r.Post("/{listId}/todos", router.handler.CreateTodo)
	})

	r.Route("/api/todos", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authMW.RequireAuth)

		r.Patch("/{id}", router.handler.UpdateTodo)
		r.Delete("/{id}", router.handler.DeleteTodo)
	})

	// WebSocket upgrade authenticates inside the handler (query
	// token), so RequireAuth is not mounted here.
	r.With(router.chiMW.RateLimit()).Get("/api/ws", router.handler.WebSocket)

	r.Route("/api/invites", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)

		// Public probe for the registration screen.
		r.Get("/validate/{token}", router.handler.ValidateInvite)

		r.Group(func(r chi.Router) {
			r.Use(router.authMW.RequireAuth)
			r.Use(router.authMW.RequireAdmin)

			r.Post("/", router.handler.CreateInvite)
			r.Get("/", router.handler.ListInvites)
			r.Delete("/{inviteId}", router.handler.DeleteInvite)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.authMW.RequireAuth)
		r.Use(router.authMW.RequireAdmin)

		r.Get("/", router.handler.ListUsers)
		r.Post("/", router.handler.CreateUser)
		r.Patch("/{userId}/admin", router.handler.SetAdmin)
		r.Delete("/{userId}", router.handler.DeleteUser)
	})

	return r
}
