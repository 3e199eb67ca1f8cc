// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package rollover

import "testing"

func TestAttribute(t *testing.T) {
	const rollover4am = 4 * 3600

	tests := []struct {
		name      string
		completed int
		deadline  int
		rollover  int
		wantEarly bool
		wantDelta int
	}{
		{
			name:      "pre-rollover deadline finished just in time",
			completed: SecondsOfDay(1, 50, 0),
			deadline:  SecondsOfDay(2, 0, 0),
			rollover:  rollover4am,
			wantEarly: true,
			wantDelta: 10 * 60,
		},
		{
			name:      "evening deadline finished after midnight",
			completed: SecondsOfDay(0, 30, 0),
			deadline:  SecondsOfDay(20, 0, 0),
			rollover:  rollover4am,
			wantEarly: false,
			wantDelta: 4*3600 + 30*60,
		},
		{
			name:      "exactly on the deadline is early",
			completed: SecondsOfDay(20, 0, 0),
			deadline:  SecondsOfDay(20, 0, 0),
			rollover:  rollover4am,
			wantEarly: true,
			wantDelta: 0,
		},
		{
			name:      "ordinary afternoon completion",
			completed: SecondsOfDay(14, 0, 0),
			deadline:  SecondsOfDay(17, 30, 0),
			rollover:  rollover4am,
			wantEarly: true,
			wantDelta: 3*3600 + 30*60,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Attribute(tt.completed, tt.deadline, tt.rollover)
			if got.Early != tt.wantEarly || got.Delta != tt.wantDelta {
				t.Errorf("Attribute(%d, %d, %d) = {Early:%v Delta:%d}, want {Early:%v Delta:%d}",
					tt.completed, tt.deadline, tt.rollover,
					got.Early, got.Delta, tt.wantEarly, tt.wantDelta)
			}
		})
	}
}

func TestAttributionString(t *testing.T) {
	early := Attribution{Early: true, Delta: 10 * 60}
	if got := early.String(); got != "10m 0s early" {
		t.Errorf("early attribution = %q, want %q", got, "10m 0s early")
	}
	late := Attribution{Early: false, Delta: 4*3600 + 30*60}
	if got := late.String(); got != "4h 30m 0s late" {
		t.Errorf("late attribution = %q, want %q", got, "4h 30m 0s late")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{3*60 + 12, "3m 12s"},
		{2*3600 + 5, "2h 0m 5s"},
		{4*3600 + 30*60, "4h 30m 0s"},
		{SecondsPerDay, "1d 0h 0m 0s"},
		{SecondsPerDay + 3661, "1d 1h 1m 1s"},
		{-45, "45s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
