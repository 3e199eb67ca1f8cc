// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package alert evaluates deadline proximity for pending tasks and
// pushes escalating notifications.
//
// Two streams per task, both derived from the remaining time to the
// deadline within the current app-day:
//
//   - one-shot threshold alerts when the remaining time first drops
//     under 1h, 10m, 5m and 1m, each armed again only after the task
//     leaves that window (completion, rollover or a deadline change);
//   - a cadence stream that repeats every 10 minutes inside the final
//     hour, every minute inside 10 minutes, every 10 seconds inside
//     5 minutes and every second inside the final minute, plus one
//     distinct alert when the final 10 seconds begin.
//
// Transport is pluggable through Notifier; the engine only decides
// when an alert is due.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/metrics"
	"github.com/daybreak-labs/daybreak/internal/models"
	"github.com/daybreak-labs/daybreak/internal/rollover"
)

// Alert kinds, in the Kind field of every notification.
const (
	KindThreshold   = "threshold"
	KindCadence     = "cadence"
	KindFinalWindow = "final-window"
)

// One-shot thresholds in seconds of remaining time, tightest first.
var thresholds = []int{60, 5 * 60, 10 * 60, 60 * 60}

// finalWindowSeconds is the start of the distinct endgame alert.
const finalWindowSeconds = 10

// Alert is one due notification.
type Alert struct {
	TodoID    string
	ListID    string
	Title     string
	Kind      string
	Threshold int // seconds; set for threshold alerts
	Remaining int // seconds to the deadline
	Message   string
}

// Notifier delivers due alerts. Implementations must not block: the
// engine calls them on its evaluation goroutine.
type Notifier interface {
	Notify(alert Alert)
}

// Store is the persistence surface the engine polls.
type Store interface {
	PendingTodos(ctx context.Context) ([]*models.PendingTodo, error)
}

// taskState is the per-task arming bookkeeping.
type taskState struct {
	fired      map[int]bool // threshold seconds -> fired this cycle
	finalFired bool
	remaining  int
	seen       bool
}

// Engine polls pending tasks once per second and runs the alert table
// against each one. Single goroutine; no internal locking.
type Engine struct {
	store    Store
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	state map[string]*taskState
}

// New builds an engine with the one-second evaluation interval.
func New(st Store, notifier Notifier) *Engine {
	return &Engine{
		store:    st,
		notifier: notifier,
		interval: time.Second,
		now:      time.Now,
		logger:   logging.WithComponent("alert"),
		state:    make(map[string]*taskState),
	}
}

// Serve evaluates until the context is canceled. It satisfies the
// suture service contract.
func (e *Engine) Serve(ctx context.Context) error {
	e.logger.Info().Dur("interval", e.interval).Msg("deadline alert engine started")

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("deadline alert engine stopped")
			return ctx.Err()
		case <-ticker.C:
			e.Evaluate(ctx)
		}
	}
}

// Evaluate runs one tick: reads pending tasks, fires due alerts and
// drops state for tasks that are gone, which re-arms their one-shots.
func (e *Engine) Evaluate(ctx context.Context) {
	pending, err := e.store.PendingTodos(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("reading pending todos failed")
		return
	}

	now := e.now()
	nowSec := rollover.SecondsOfDay(now.Hour(), now.Minute(), now.Second())

	alive := make(map[string]bool, len(pending))
	for _, todo := range pending {
		alive[todo.ID] = true
		e.evaluateTask(todo, nowSec)
	}

	for id := range e.state {
		if !alive[id] {
			delete(e.state, id)
		}
	}
}

func (e *Engine) evaluateTask(todo *models.PendingTodo, nowSec int) {
	remaining := rollover.OffsetToDeadline(nowSec, todo.DeadlineSeconds(), todo.RolloverSeconds())

	st, ok := e.state[todo.ID]
	if !ok {
		st = &taskState{fired: make(map[int]bool)}
		e.state[todo.ID] = st
	}
	prev := st.remaining
	seen := st.seen
	st.remaining = remaining
	st.seen = true

	// Past the deadline there is nothing left to announce; the urgency
	// classifier owns the expired presentation.
	if remaining < 0 {
		return
	}

	e.fireThresholds(todo, st, remaining, prev, seen)
	e.fireCadence(todo, st, remaining, prev, seen)
	e.fireFinalWindow(todo, st, remaining)
}

// fireThresholds handles the one-shot alerts. Several thresholds can
// be crossed in one observation (first sight of a task already inside
// the hour); only the tightest speaks, the rest arm silently.
func (e *Engine) fireThresholds(todo *models.PendingTodo, st *taskState, remaining, prev int, seen bool) {
	fired := false
	for _, th := range thresholds {
		if remaining > th {
			// Left the window: arm again.
			st.fired[th] = false
			continue
		}
		crossed := !seen || prev > th
		if st.fired[th] || !crossed {
			continue
		}
		st.fired[th] = true
		if !fired {
			fired = true
			e.notify(Alert{
				TodoID:    todo.ID,
				ListID:    todo.ListID,
				Title:     todo.Title,
				Kind:      KindThreshold,
				Threshold: th,
				Remaining: remaining,
				Message:   fmt.Sprintf("%q is due in %s", todo.Title, rollover.FormatDuration(remaining)),
			})
		}
	}
}

// cadencePeriod returns the repeat period for the remaining time, or
// zero outside the final hour.
func cadencePeriod(remaining int) int {
	switch {
	case remaining <= 0:
		return 0
	case remaining <= 60:
		return 1
	case remaining <= 5*60:
		return 10
	case remaining <= 10*60:
		return 60
	case remaining <= 60*60:
		return 10 * 60
	default:
		return 0
	}
}

// fireCadence repeats on period boundaries. Boundary detection is by
// crossing, not equality, so a delayed tick cannot silently skip one.
func (e *Engine) fireCadence(todo *models.PendingTodo, st *taskState, remaining, prev int, seen bool) {
	period := cadencePeriod(remaining)
	if period == 0 || !seen || prev <= remaining {
		return
	}
	if prev/period == remaining/period {
		return
	}
	e.notify(Alert{
		TodoID:    todo.ID,
		ListID:    todo.ListID,
		Title:     todo.Title,
		Kind:      KindCadence,
		Remaining: remaining,
		Message:   fmt.Sprintf("%q is due in %s", todo.Title, rollover.FormatDuration(remaining)),
	})
}

func (e *Engine) fireFinalWindow(todo *models.PendingTodo, st *taskState, remaining int) {
	if remaining > finalWindowSeconds {
		st.finalFired = false
		return
	}
	if st.finalFired {
		return
	}
	st.finalFired = true
	e.notify(Alert{
		TodoID:    todo.ID,
		ListID:    todo.ListID,
		Title:     todo.Title,
		Kind:      KindFinalWindow,
		Remaining: remaining,
		Message:   fmt.Sprintf("%q is due in %s", todo.Title, rollover.FormatDuration(remaining)),
	})
}

func (e *Engine) notify(alert Alert) {
	if e.notifier == nil {
		return
	}
	metrics.RecordAlert(alert.Kind)
	e.notifier.Notify(alert)
}
