// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package models

// Request bodies accepted by the HTTP API. Optional and zero-valid
// fields use pointers so "absent" and "zero" stay distinguishable;
// validation tags are enforced before any state changes.

// CreateListRequest creates a list, or returns the existing one when
// the caller supplies an ID that is already taken (create-or-get).
type CreateListRequest struct {
	ID   string `json:"id" validate:"omitempty,min=1,max=128"`
	Name string `json:"name" validate:"required,min=1,max=256"`
}

// UpdateRolloverRequest changes a list's app-day boundary.
type UpdateRolloverRequest struct {
	RolloverHour   *int `json:"rolloverHour" validate:"required,gte=0,lte=23"`
	RolloverMinute *int `json:"rolloverMinute" validate:"required,gte=0,lte=59"`
}

// CreateTodoRequest adds a task to a list.
type CreateTodoRequest struct {
	Title          string `json:"title" validate:"required,min=1,max=512"`
	DeadlineHour   *int   `json:"deadlineHour" validate:"required,gte=0,lte=23"`
	DeadlineMinute *int   `json:"deadlineMinute" validate:"required,gte=0,lte=59"`
}

// UpdateTodoRequest is a partial update. Only present fields change.
// Setting Completed to false clears every completion field server-side
// regardless of what else the body carries; setting it to true without
// explicit completion fields stamps the server clock.
type UpdateTodoRequest struct {
	Title          *string `json:"title" validate:"omitempty,min=1,max=512"`
	DeadlineHour   *int    `json:"deadlineHour" validate:"omitempty,gte=0,lte=23"`
	DeadlineMinute *int    `json:"deadlineMinute" validate:"omitempty,gte=0,lte=59"`
	Completed      *bool   `json:"completed"`
	CompletedDate  *string `json:"completedDate" validate:"omitempty,datetime=2006-01-02"`
	CompletedHour  *int    `json:"completedHour" validate:"omitempty,gte=0,lte=23"`
	CompletedMin   *int    `json:"completedMinute" validate:"omitempty,gte=0,lte=59"`
	CompletedSec   *int    `json:"completedSecond" validate:"omitempty,gte=0,lte=59"`
}

// SetupRequest creates the first admin account. Rejected once any
// admin exists.
type SetupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanumunicode"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest exchanges credentials for a JWT.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest self-registers a user against an active invite.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64,alphanumunicode"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	InviteToken string `json:"inviteToken" validate:"required"`
}

// CreateInviteRequest mints a registration token (admin only).
type CreateInviteRequest struct {
	MaxUses int `json:"maxUses" validate:"required,gte=1,lte=1000"`
}

// CreateUserRequest creates an account directly (admin only).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanumunicode"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	IsAdmin  bool   `json:"isAdmin"`
}

// SetAdminRequest grants or revokes the admin flag (admin only,
// never on yourself).
type SetAdminRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}
