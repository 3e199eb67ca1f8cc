// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package api provides the HTTP surface: chi routing, request
// handlers and the WebSocket upgrade endpoint.
//
// Handler methods are split across files by resource:
//   - handlers_lists.go: list CRUD and rollover configuration
//   - handlers_todos.go: todo CRUD with post-commit broadcasts
//   - handlers_auth.go: setup, login, verify, invite registration
//   - handlers_invites.go: invite administration
//   - handlers_users.go: user administration
//   - handlers_health.go: liveness
//   - handlers_ws.go: WebSocket upgrade
package api

import (
	"time"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/config"
	"github.com/daybreak-labs/daybreak/internal/models"
	"github.com/daybreak-labs/daybreak/internal/store"
	ws "github.com/daybreak-labs/daybreak/internal/websocket"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Broadcaster fans list events out to WebSocket subscribers. The hub
// implements it; handler tests substitute a recording fake.
type Broadcaster interface {
	BroadcastTodoAdded(todo *models.Todo)
	BroadcastTodoUpdated(todo *models.Todo)
	BroadcastTodoDeleted(listID, todoID string)
	BroadcastRollover(listID string, resetCount int64)
	GetClientCount() int
}

// Handler contains the dependencies for all API handlers.
type Handler struct {
	store     store.Store
	hub       Broadcaster
	wsHub     *ws.Hub
	config    *config.Config
	jwt       *auth.JWTManager
	hasher    *auth.PasswordHasher
	startTime time.Time
}

// NewHandler creates an API handler. Broadcasts go through hub only
// after the corresponding store commit succeeds.
func NewHandler(st store.Store, hub Broadcaster, cfg *config.Config, jwt *auth.JWTManager, hasher *auth.PasswordHasher) *Handler {
	h := &Handler{
		store:     st,
		hub:       hub,
		config:    cfg,
		jwt:       jwt,
		hasher:    hasher,
		startTime: time.Now(),
	}
	// The upgrade endpoint needs the concrete hub to register
	// connections; broadcasts stay behind the interface for tests.
	if concrete, ok := hub.(*ws.Hub); ok {
		h.wsHub = concrete
	}
	return h
}
