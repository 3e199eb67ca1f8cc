// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-labs/daybreak/internal/models"
)

// CreateTodo handles POST /api/lists/{listId}/todos. Subscribers see
// the todo-added event only after the row is committed.
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	todo := &models.Todo{
		ListID:         chi.URLParam(r, "listId"),
		Title:          req.Title,
		DeadlineHour:   *req.DeadlineHour,
		DeadlineMinute: *req.DeadlineMinute,
	}

	if err := h.store.CreateTodo(r.Context(), todo); err != nil {
		respondStoreError(w, err)
		return
	}

	h.hub.BroadcastTodoAdded(todo)
	respondSuccess(w, http.StatusCreated, todo, start)
}

// UpdateTodo handles PATCH /api/todos/{id}. Only present fields
// change. Completion state always moves as a unit: completed:false
// clears all four completion fields no matter what else the body
// carries, and completed:true without explicit fields stamps the
// server clock.
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	todo, err := h.store.GetTodo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	applyTodoPatch(todo, &req)

	if err := h.store.UpdateTodo(r.Context(), todo); err != nil {
		respondStoreError(w, err)
		return
	}

	h.hub.BroadcastTodoUpdated(todo)
	respondSuccess(w, http.StatusOK, todo, start)
}

// applyTodoPatch merges a partial update into a stored todo.
func applyTodoPatch(todo *models.Todo, req *models.UpdateTodoRequest) {
	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.DeadlineHour != nil {
		todo.DeadlineHour = *req.DeadlineHour
	}
	if req.DeadlineMinute != nil {
		todo.DeadlineMinute = *req.DeadlineMinute
	}

	if req.Completed == nil {
		return
	}

	if !*req.Completed {
		todo.ClearCompletion()
		return
	}

	if req.CompletedDate != nil && req.CompletedHour != nil && req.CompletedMin != nil && req.CompletedSec != nil {
		// Client supplied the full completion instant; trust it so
		// offline completions attribute against the right moment.
		todo.Completed = true
		todo.CompletedDate = req.CompletedDate
		todo.CompletedHour = req.CompletedHour
		todo.CompletedMin = req.CompletedMin
		todo.CompletedSec = req.CompletedSec
		return
	}

	todo.MarkCompleted(time.Now())
}

// DeleteTodo handles DELETE /api/todos/{id}. The todo is read first
// so the broadcast can name its list.
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	todo, err := h.store.GetTodo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := h.store.DeleteTodo(r.Context(), todo.ID); err != nil {
		respondStoreError(w, err)
		return
	}

	h.hub.BroadcastTodoDeleted(todo.ListID, todo.ID)
	respondSuccess(w, http.StatusOK, nil, start)
}
