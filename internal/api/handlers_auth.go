// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/daybreak-labs/daybreak/internal/auth"
	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/metrics"
	"github.com/daybreak-labs/daybreak/internal/models"
	"github.com/daybreak-labs/daybreak/internal/store"
)

// AdminExists handles GET /api/auth/admin-exists. Unauthenticated:
// the client uses it to pick between the setup and login screens.
func (h *Handler) AdminExists(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	exists, err := h.store.AdminExists(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, models.AdminExistsResponse{AdminExists: exists}, start)
}

// Setup handles POST /api/auth/setup. Creates the first admin and is
// permanently closed once any admin exists.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SetupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	exists, err := h.store.AdminExists(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if exists {
		respondError(w, http.StatusForbidden, models.ErrCodeForbidden, "setup is already complete", nil)
		return
	}

	user, err := h.createUser(r, req.Username, req.Password, true)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	logging.NewSecurityLogger().LogSetup(user.ID, user.Username, r.RemoteAddr)
	h.issueToken(w, http.StatusCreated, user, start)
}

// Login handles POST /api/auth/login. Failures are uniform so the
// response does not reveal whether the username exists.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	secLog := logging.NewSecurityLogger()

	user, err := h.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			respondStoreError(w, err)
			return
		}
		metrics.RecordLoginAttempt(false)
		secLog.LogLoginFailure(req.Username, r.RemoteAddr, "unknown user")
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "invalid username or password", nil)
		return
	}

	if !h.hasher.Compare(user.PasswordHash, req.Password) {
		metrics.RecordLoginAttempt(false)
		secLog.LogLoginFailure(req.Username, r.RemoteAddr, "wrong password")
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "invalid username or password", nil)
		return
	}

	metrics.RecordLoginAttempt(true)
	secLog.LogLoginSuccess(user.ID, user.Username, r.RemoteAddr)
	h.issueToken(w, http.StatusOK, user, start)
}

// Verify handles GET /api/auth/verify. The user is re-read from the
// store so a deleted account or revoked admin flag shows immediately.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "missing bearer token", nil)
		return
	}

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "account no longer exists", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, user, start)
}

// Register handles POST /api/auth/register. The invite is consumed
// before the account is created; a full invite rejects registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	invite, err := h.store.GetInviteByToken(r.Context(), req.InviteToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusForbidden, models.ErrCodeForbidden, "invite is not valid", nil)
			return
		}
		respondStoreError(w, err)
		return
	}

	if err := h.store.ConsumeInvite(r.Context(), invite.ID); err != nil {
		respondStoreError(w, err)
		return
	}

	user, err := h.createUser(r, req.Username, req.Password, false)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	metrics.InvitesRedeemed.Inc()
	logging.NewSecurityLogger().LogInviteRedeemed(user.ID, user.Username, invite.ID, r.RemoteAddr)
	h.issueToken(w, http.StatusCreated, user, start)
}

// createUser hashes the password and inserts the account.
func (h *Handler) createUser(r *http.Request, username, password string, isAdmin bool) (*models.User, error) {
	hash, err := h.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		return nil, err
	}
	return user, nil
}

// issueToken responds with a fresh JWT plus the user record.
func (h *Handler) issueToken(w http.ResponseWriter, status int, user *models.User, start time.Time) {
	token, err := h.jwt.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "failed to issue token", err)
		return
	}

	respondSuccess(w, status, models.TokenResponse{Token: token, User: user}, start)
}
