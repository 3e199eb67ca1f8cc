// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package rollover

// Urgency is a tier derived from the signed offset to a deadline.
// Tiers are a pure function of the offset with no hysteresis; a task
// sitting on a boundary flips tiers the second it crosses.
type Urgency int

const (
	// Expired means the deadline has passed on the current app-day.
	Expired Urgency = iota
	// VeryUrgent means less than 5 minutes remain.
	VeryUrgent
	// Urgent means less than 15 minutes remain.
	Urgent
	// Caution means less than 1 hour remains.
	Caution
	// Normal means at least 1 hour remains.
	Normal
)

// Tier boundaries in seconds of remaining time.
const (
	veryUrgentWindow = 5 * 60
	urgentWindow     = 15 * 60
	cautionWindow    = 60 * 60
)

// String returns the wire name of the urgency tier.
func (u Urgency) String() string {
	switch u {
	case Expired:
		return "expired"
	case VeryUrgent:
		return "very-urgent"
	case Urgent:
		return "urgent"
	case Caution:
		return "caution"
	default:
		return "normal"
	}
}

// Classify maps a signed deadline offset to an urgency tier.
// Lower bounds are inclusive, upper bounds exclusive: exactly 300
// seconds remaining is Urgent, not VeryUrgent. Completed tasks carry
// no urgency; callers must not classify them.
func Classify(offsetSec int) Urgency {
	switch {
	case offsetSec < 0:
		return Expired
	case offsetSec < veryUrgentWindow:
		return VeryUrgent
	case offsetSec < urgentWindow:
		return Urgent
	case offsetSec < cautionWindow:
		return Caution
	default:
		return Normal
	}
}
