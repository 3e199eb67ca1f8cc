// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package rollover

import (
	"cmp"
	"slices"
)

// Deadliner is anything that carries a time-of-day deadline and a
// stable identity for tie-breaking.
type Deadliner interface {
	DeadlineSeconds() int
	RankID() string
}

// Rank sorts items in place, ascending by signed offset from nowSec to
// each item's deadline on the app-day anchored at rolloverSec: most
// overdue first, most distant last. Every offset is computed from the
// same now snapshot so a tick during sorting cannot produce an
// inconsistent order. Equal offsets fall back to id order.
func Rank[T Deadliner](items []T, nowSec, rolloverSec int) {
	slices.SortStableFunc(items, func(a, b T) int {
		oa := OffsetToDeadline(nowSec, a.DeadlineSeconds(), rolloverSec)
		ob := OffsetToDeadline(nowSec, b.DeadlineSeconds(), rolloverSec)
		if oa != ob {
			return cmp.Compare(oa, ob)
		}
		return cmp.Compare(a.RankID(), b.RankID())
	})
}
