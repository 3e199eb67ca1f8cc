// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package alert

import (
	"github.com/rs/zerolog"

	"github.com/daybreak-labs/daybreak/internal/logging"
	ws "github.com/daybreak-labs/daybreak/internal/websocket"
)

// LogNotifier writes alerts to the structured log.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier returns a notifier logging under the alert component.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: logging.WithComponent("alert")}
}

func (n *LogNotifier) Notify(alert Alert) {
	n.logger.Info().
		Str("todo_id", alert.TodoID).
		Str("list_id", alert.ListID).
		Str("kind", alert.Kind).
		Int("remaining_seconds", alert.Remaining).
		Msg(alert.Message)
}

// HubNotifier pushes alerts to the task's list subscribers.
type HubNotifier struct {
	hub interface{ BroadcastAlert(ws.AlertData) }
}

// NewHubNotifier wraps the WebSocket hub.
func NewHubNotifier(hub *ws.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(alert Alert) {
	n.hub.BroadcastAlert(ws.AlertData{
		TodoID:           alert.TodoID,
		ListID:           alert.ListID,
		Title:            alert.Title,
		Kind:             alert.Kind,
		RemainingSeconds: alert.Remaining,
		Message:          alert.Message,
	})
}

// MultiNotifier fans one alert out to several transports.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(alert Alert) {
	for _, n := range m {
		n.Notify(alert)
	}
}
