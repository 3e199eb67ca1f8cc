// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package models defines the domain entities and the request/response
// shapes of the HTTP API.
package models

import "time"

// DefaultRolloverHour is the rollover time assigned to new lists.
// 04:00 keeps late-evening tasks on the day they were meant for.
const (
	DefaultRolloverHour   = 4
	DefaultRolloverMinute = 0
)

// List is a shared collection of todos with its own app-day boundary.
// All subscribers of a list see the same rollover time; changing it
// takes effect at the next sweep tick.
type List struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	RolloverHour   int       `json:"rolloverHour" db:"rollover_hour"`
	RolloverMinute int       `json:"rolloverMinute" db:"rollover_minute"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Todos is populated on single-list reads, in insertion order.
	// Deadline ranking is a display concern computed per request.
	Todos []*Todo `json:"todos" db:"-"`
}

// RolloverSeconds returns the list's rollover time as seconds since
// midnight.
func (l *List) RolloverSeconds() int {
	return l.RolloverHour*3600 + l.RolloverMinute*60
}
