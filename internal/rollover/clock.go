// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package rollover implements the app-day timeline: a 24-hour cycle that
// begins at a list's configured rollover time instead of midnight.
//
// All deadline arithmetic in the application routes through
// OffsetToDeadline. Ranking, countdown display, urgency classification
// and completion attribution are all defined in terms of the signed
// offset it returns, so the notions of "remaining", "overdue", "early"
// and "late" can never disagree with each other.
//
// Inputs are plain seconds-of-day (0..86399). The functions are pure and
// know nothing about dates, time zones or wall clocks; callers snapshot
// time.Now once and convert.
package rollover

// SecondsPerDay is the length of one app-day in seconds.
const SecondsPerDay = 24 * 60 * 60

// SecondsOfDay converts a clock time to seconds since midnight.
func SecondsOfDay(hour, minute, second int) int {
	return hour*3600 + minute*60 + second
}

// OffsetToDeadline returns the signed number of seconds from the
// reference instant to the deadline, both expressed as seconds-of-day,
// on the app-day timeline anchored at rolloverSec.
//
// A time-of-day at or after the rollover time belongs to the app-day
// that started at that rollover; a time before it belongs to the
// app-day that started at the rollover of the previous calendar day.
// The boundary is inclusive: a deadline exactly at the rollover time
// counts as after it.
//
// When the reference and the deadline fall in different app-days the
// deadline is shifted by one whole day before subtracting, so the
// result is always the distance within a single app-day cycle:
// positive means time remaining, negative means overdue, zero means
// due this instant.
func OffsetToDeadline(refSec, deadlineSec, rolloverSec int) int {
	refAfter := refSec >= rolloverSec
	deadlineAfter := deadlineSec >= rolloverSec

	adjusted := deadlineSec
	switch {
	case !refAfter && deadlineAfter:
		// Reference is in the tail of yesterday's app-day; the
		// deadline already passed before midnight.
		adjusted -= SecondsPerDay
	case refAfter && !deadlineAfter:
		// Deadline sits in the pre-rollover slot after midnight,
		// still ahead on this app-day.
		adjusted += SecondsPerDay
	}
	return adjusted - refSec
}
