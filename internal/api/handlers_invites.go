// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/models"
	"github.com/daybreak-labs/daybreak/internal/store"
)

// CreateInvite handles POST /api/invites (admin only).
func (h *Handler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing bearer token", nil)
		return
	}

	var req models.CreateInviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	token, err := auth.GenerateInviteToken()
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "failed to generate invite token", err)
		return
	}

	invite := &models.Invite{
		Token:     token,
		CreatedBy: claims.UserID,
		MaxUses:   req.MaxUses,
	}
	if err := h.store.CreateInvite(r.Context(), invite); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, invite, start)
}

// ListInvites handles GET /api/invites (admin only).
func (h *Handler) ListInvites(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	invites, err := h.store.ListInvites(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, invites, start)
}

// DeleteInvite handles DELETE /api/invites/{inviteId} (admin only).
func (h *Handler) DeleteInvite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.store.DeleteInvite(r.Context(), chi.URLParam(r, "inviteId")); err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, nil, start)
}

// ValidateInvite handles GET /api/invites/validate/{token}.
// Unauthenticated: the registration screen probes it before asking
// for credentials. Unknown and exhausted tokens answer the same way.
func (h *Handler) ValidateInvite(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	invite, err := h.store.GetInviteByToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondSuccess(w, http.StatusOK, models.InviteValidity{Valid: false}, start)
			return
		}
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, models.InviteValidity{Valid: invite.Active()}, start)
}
