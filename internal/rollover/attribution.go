// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package rollover

import (
	"fmt"
	"strings"
)

// Attribution records whether a task was completed before or after its
// deadline on the app-day it was completed in, and by how much.
type Attribution struct {
	// Early is true when the task was completed at or before the
	// deadline. Delta is the absolute distance in seconds.
	Early bool
	Delta int
}

// Attribute computes completion attribution by treating the completion
// instant as the reference point on the app-day timeline. A completion
// exactly at the deadline counts as early with zero delta.
func Attribute(completedSec, deadlineSec, rolloverSec int) Attribution {
	diff := OffsetToDeadline(completedSec, deadlineSec, rolloverSec)
	if diff >= 0 {
		return Attribution{Early: true, Delta: diff}
	}
	return Attribution{Early: false, Delta: -diff}
}

// String renders the attribution as a human sentence fragment such as
// "10m early" or "4h 30m late".
func (a Attribution) String() string {
	qualifier := "late"
	if a.Early {
		qualifier = "early"
	}
	return FormatDuration(a.Delta) + " " + qualifier
}

// FormatDuration renders a non-negative number of seconds as a compact
// day/hour/minute/second string. A unit is omitted only when it and
// every coarser unit are zero, so interior zeros are kept:
// "45s", "3m 12s", "2h 0m 5s", "1d 0h 0m 0s". Zero renders as "0s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = -seconds
	}
	days := seconds / SecondsPerDay
	hours := (seconds % SecondsPerDay) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if days > 0 || hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if days > 0 || hours > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	fmt.Fprintf(&b, "%ds", secs)
	return b.String()
}
