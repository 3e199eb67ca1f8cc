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
	"github.com/daybreak-labs/daybreak/internal/rollover"
)

// CreateList handles POST /api/lists. Creating a list whose ID is
// already taken returns the existing list, so clients sharing a list
// URL all land on the same list.
func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	list, err := h.store.CreateList(r.Context(), req.ID, req.Name)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	list.Todos = []*models.Todo{}

	respondSuccess(w, http.StatusCreated, list, start)
}

// GetList handles GET /api/lists/{id}. Todos come back in insertion
// order; ?order=deadline returns them ranked by time remaining on the
// list's app-day timeline instead.
func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	list, err := h.store.GetListWithTodos(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if r.URL.Query().Get("order") == "deadline" {
		now := time.Now()
		nowSec := rollover.SecondsOfDay(now.Hour(), now.Minute(), now.Second())
		rollover.Rank(list.Todos, nowSec, list.RolloverSeconds())
	}

	respondSuccess(w, http.StatusOK, list, start)
}

// GetRollover handles GET /api/lists/{id}/rollover.
func (h *Handler) GetRollover(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	list, err := h.store.GetList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, models.RolloverResponse{
		RolloverHour:   list.RolloverHour,
		RolloverMinute: list.RolloverMinute,
	}, start)
}

// UpdateRollover handles PUT /api/lists/{id}/rollover. The new
// boundary takes effect at the next sweep tick.
func (h *Handler) UpdateRollover(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateRolloverRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	list, err := h.store.UpdateRollover(r.Context(), chi.URLParam(r, "id"), *req.RolloverHour, *req.RolloverMinute)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, list, start)
}

// DeleteList handles DELETE /api/lists/{id}. Todos cascade.
func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.store.DeleteList(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, nil, start)
}
