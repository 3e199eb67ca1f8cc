// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package api

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/models"
	ws "github.com/daybreak-labs/daybreak/internal/websocket"
)

// WebSocket handles GET /api/ws. Browsers cannot set an Authorization
// header on a WebSocket dial, so the token travels in the ?token
// query parameter; a Bearer header works too for non-browser clients.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeInternal, "websocket hub is not running", nil)
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		if header := r.Header.Get("Authorization"); len(header) > 7 {
			token = header[7:]
		}
	}
	if _, err := h.jwt.ValidateToken(token); err != nil {
		respondError(w, http.StatusUnauthorized, models.ErrCodeUnauthorized, "invalid or expired token", nil)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// checkOrigin accepts same-host requests plus the configured CORS
// origins. Requests without an Origin header (non-browser clients)
// pass.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if parsed.Host == r.Host {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
