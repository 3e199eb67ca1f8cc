// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/models"
)

// ListUsers handles GET /api/users (admin only).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, users, start)
}

// CreateUser handles POST /api/users (admin only). Unlike register,
// no invite is needed and the admin flag can be set directly.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	user, err := h.createUser(r, req.Username, req.Password, req.IsAdmin)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, user, start)
}

// SetAdmin handles PATCH /api/users/{userId}/admin (admin only).
// Admins cannot change their own flag, so the instance can never
// demote its last admin by accident.
func (h *Handler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	claims := auth.ClaimsFromContext(r.Context())
	targetID := chi.URLParam(r, "userId")
	if claims != nil && claims.UserID == targetID {
		respondError(w, http.StatusForbidden, models.ErrCodeForbidden, "cannot change your own admin flag", nil)
		return
	}

	var req models.SetAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	if err := h.store.SetAdmin(r.Context(), targetID, *req.IsAdmin); err != nil {
		respondStoreError(w, err)
		return
	}

	if claims != nil {
		logging.NewSecurityLogger().LogAdminChange(claims.UserID, targetID, *req.IsAdmin, r.RemoteAddr)
	}

	user, err := h.store.GetUserByID(r.Context(), targetID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, user, start)
}

// DeleteUser handles DELETE /api/users/{userId} (admin only).
// Self-deletion is rejected.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	claims := auth.ClaimsFromContext(r.Context())
	targetID := chi.URLParam(r, "userId")
	if claims != nil && claims.UserID == targetID {
		respondError(w, http.StatusForbidden, models.ErrCodeForbidden, "cannot delete your own account", nil)
		return
	}

	if err := h.store.DeleteUser(r.Context(), targetID); err != nil {
		respondStoreError(w, err)
		return
	}

	if claims != nil {
		logging.NewSecurityLogger().LogUserDeleted(claims.UserID, targetID, r.RemoteAddr)
	}

	respondSuccess(w, http.StatusOK, nil, start)
}
