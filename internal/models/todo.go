// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package models

import "time"

// Todo is a daily-recurring task with a time-of-day deadline. The
// deadline carries no date: the task recurs every app-day and the
// rollover sweep clears its completion state at the list's rollover
// time.
//
// The four completion fields are present if and only if Completed is
// true. They freeze the instant the task was marked done so that
// early/late attribution survives past midnight into the rest of the
// app-day.
type Todo struct {
	ID             string  `json:"id" db:"id"`
	ListID         string  `json:"listId" db:"list_id"`
	Title          string  `json:"title" db:"title"`
	DeadlineHour   int     `json:"deadlineHour" db:"deadline_hour"`
	DeadlineMinute int     `json:"deadlineMinute" db:"deadline_minute"`
	Completed      bool    `json:"completed" db:"completed"`
	CompletedDate  *string `json:"completedDate,omitempty" db:"completed_date"`
	CompletedHour  *int    `json:"completedHour,omitempty" db:"completed_hour"`
	CompletedMin   *int    `json:"completedMinute,omitempty" db:"completed_minute"`
	CompletedSec   *int    `json:"completedSecond,omitempty" db:"completed_second"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PendingTodo pairs an incomplete todo with its list's rollover time,
// as read by the alert engine in one join.
type PendingTodo struct {
	Todo
	RolloverHour   int `json:"rolloverHour" db:"rollover_hour"`
	RolloverMinute int `json:"rolloverMinute" db:"rollover_minute"`
}

// RolloverSeconds returns the list's rollover boundary as seconds
// since midnight.
func (p *PendingTodo) RolloverSeconds() int {
	return p.RolloverHour*3600 + p.RolloverMinute*60
}

// DeadlineSeconds returns the deadline as seconds since midnight.
func (t *Todo) DeadlineSeconds() int {
	return t.DeadlineHour*3600 + t.DeadlineMinute*60
}

// RankID returns the stable tie-break identity for deadline ranking.
func (t *Todo) RankID() string { return t.ID }

// CompletedSeconds returns the completion instant as seconds since
// midnight, or false if the task is not completed.
func (t *Todo) CompletedSeconds() (int, bool) {
	if !t.Completed || t.CompletedHour == nil || t.CompletedMin == nil || t.CompletedSec == nil {
		return 0, false
	}
	return *t.CompletedHour*3600 + *t.CompletedMin*60 + *t.CompletedSec, true
}

// ClearCompletion resets the task to incomplete and drops all four
// completion fields together. Partial completion state is never valid.
func (t *Todo) ClearCompletion() {
	t.Completed = false
	t.CompletedDate = nil
	t.CompletedHour = nil
	t.CompletedMin = nil
	t.CompletedSec = nil
}

// MarkCompleted stamps the task done at the given instant.
func (t *Todo) MarkCompleted(at time.Time) {
	date := at.Format("2006-01-02")
	hour, minute, second := at.Hour(), at.Minute(), at.Second()
	t.Completed = true
	t.CompletedDate = &date
	t.CompletedHour = &hour
	t.CompletedMin = &minute
	t.CompletedSec = &second
}
