// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package store persists lists, todos, users and invites in SQLite.
//
// The SQLite file is the single source of truth: handlers commit here
// first and broadcast to WebSocket subscribers only after the commit
// succeeds.
package store

import (
	"context"
	"errors"

	"github.com/daybreak-labs/daybreak/internal/models"
)

// Sentinel errors returned by store implementations. Handlers map
// these to HTTP status codes.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")

	// ErrInviteExhausted means the invite's use cap is reached.
	ErrInviteExhausted = errors.New("invite exhausted")
)

// ListStore manages lists and their rollover configuration.
type ListStore interface {
	// CreateList inserts a list, or returns the existing one when the
	// given ID is already taken (create-or-get).
	CreateList(ctx context.Context, id, name string) (*models.List, error)

	// GetList returns a list without its todos.
	GetList(ctx context.Context, id string) (*models.List, error)

	// GetListWithTodos returns a list with todos in insertion order.
	GetListWithTodos(ctx context.Context, id string) (*models.List, error)

	// UpdateRollover changes a list's rollover time.
	UpdateRollover(ctx context.Context, id string, hour, minute int) (*models.List, error)

	// DeleteList removes a list and cascades to its todos.
	DeleteList(ctx context.Context, id string) error

	// ListsWithRollover returns every list whose rollover time matches
	// the given hour and minute exactly.
	ListsWithRollover(ctx context.Context, hour, minute int) ([]*models.List, error)
}

// TodoStore manages todos.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *models.Todo) error
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, todo *models.Todo) error
	DeleteTodo(ctx context.Context, id string) error
	TodosByList(ctx context.Context, listID string) ([]*models.Todo, error)

	// PendingTodos returns every incomplete todo with its list's
	// rollover time. Polled by the deadline alert engine.
	PendingTodos(ctx context.Context) ([]*models.PendingTodo, error)

	// ResetCompletedTodos marks every completed todo of a list
	// incomplete and clears all four completion fields in one
	// statement. Returns the number of rows changed; zero means the
	// list was already clean.
	ResetCompletedTodos(ctx context.Context, listID string) (int64, error)
}

// UserStore manages accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetAdmin(ctx context.Context, id string, isAdmin bool) error
	DeleteUser(ctx context.Context, id string) error

	// AdminExists reports whether any admin account exists. Gates the
	// first-run setup endpoint.
	AdminExists(ctx context.Context) (bool, error)
}

// InviteStore manages registration invites.
type InviteStore interface {
	CreateInvite(ctx context.Context, invite *models.Invite) error
	GetInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	ListInvites(ctx context.Context) ([]*models.Invite, error)
	DeleteInvite(ctx context.Context, id string) error

	// ConsumeInvite increments the invite's use count, guarded so the
	// cap can never be exceeded under concurrent registrations.
	ConsumeInvite(ctx context.Context, id string) error
}

// Store is the full persistence surface. *SQLiteStore implements it;
// handlers and the sweeper depend on the interfaces so tests can
// substitute fakes.
type Store interface {
	ListStore
	TodoStore
	UserStore
	InviteStore

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	Close() error
}
