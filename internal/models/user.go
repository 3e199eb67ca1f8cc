// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package models

import "time"

// User is an account on this instance. The password hash never leaves
// the store layer in API responses.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Invite is a registration token created by an admin. It stays valid
// until its use count reaches the cap.
type Invite struct {
	ID          string    `json:"id" db:"id"`
	Token       string    `json:"token" db:"token"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	MaxUses     int       `json:"maxUses" db:"max_uses"`
	CurrentUses int       `json:"currentUses" db:"current_uses"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Active reports whether the invite can still be redeemed.
func (i *Invite) Active() bool {
	return i.CurrentUses < i.MaxUses
}
