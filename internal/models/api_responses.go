// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package models

import "time"

// APIResponse is the envelope every HTTP endpoint returns.
//
// Status is "success" or "error". Data carries the payload on success;
// Error is populated only on failure.
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "deadlineHour must be between 0 and 23"
//	  },
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a structured error with a machine-readable code.
//
// Codes in use:
//   - VALIDATION_ERROR: Invalid request body or parameters
//   - NOT_FOUND: Resource doesn't exist
//   - UNAUTHORIZED: Invalid or missing credentials
//   - FORBIDDEN: Authenticated but not allowed
//   - CONFLICT: Uniqueness or state conflict
//   - DATABASE_ERROR: Storage failure
//   - INTERNAL_ERROR: Anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes used across the API.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// TokenResponse is returned by login, setup and register.
type TokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AdminExistsResponse answers the first-run probe the client uses to
// decide between the setup and login screens.
type AdminExistsResponse struct {
	AdminExists bool `json:"adminExists"`
}

// InviteValidity is the public answer for an invite token probe.
type InviteValidity struct {
	Valid bool `json:"valid"`
}

// RolloverResponse is the rollover configuration of a single list.
type RolloverResponse struct {
	RolloverHour   int `json:"rolloverHour"`
	RolloverMinute int `json:"rolloverMinute"`
}

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"databaseConnected"`
	WebSocketClients  int     `json:"websocketClients"`
	Uptime            float64 `json:"uptime"`
}
