// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package sweep runs the daily rollover job.
//
// Each list has a rollover time (hour and minute of wall clock). When
// the clock passes it, every completed todo on the list flips back to
// pending and its completion stamp is cleared, so the list starts the
// new app-day fresh. The sweeper polls the clock, matches lists by
// exact hour and minute, resets them in the store and then notifies
// WebSocket subscribers.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/daybreak-labs/daybreak/internal/config"
	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/metrics"
	"github.com/daybreak-labs/daybreak/internal/models"
)

// catchUpLimit bounds how far back a sweep reaches after the process
// was suspended. Anything older than a full day would land on the same
// rollover times again anyway.
const catchUpLimit = 24 * time.Hour

// Store is the persistence surface the sweeper needs.
type Store interface {
	ListsWithRollover(ctx context.Context, hour, minute int) ([]*models.List, error)
	ResetCompletedTodos(ctx context.Context, listID string) (int64, error)
}

// Broadcaster notifies list subscribers after a reset committed.
type Broadcaster interface {
	BroadcastRollover(listID string, resetCount int64)
}

// Sweeper polls for lists whose rollover time has arrived.
type Sweeper struct {
	store    Store
	hub      Broadcaster
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger

	// lastSwept is the most recent minute already processed, truncated
	// to the minute. Zero until the first tick.
	lastSwept time.Time
}

// New builds a sweeper. The clock defaults to time.Now.
func New(st Store, hub Broadcaster, cfg *config.SweepConfig) *Sweeper {
	return &Sweeper{
		store:    st,
		hub:      hub,
		interval: cfg.Interval,
		now:      time.Now,
		logger:   logging.WithComponent("sweep"),
	}
}

// Serve polls until the context is canceled. It satisfies the suture
// service contract and is safe to restart: the per-minute bookkeeping
// only suppresses duplicate work within one process lifetime, and a
// re-run of an already swept minute resets zero rows.
func (s *Sweeper) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("rollover sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep immediately so a restart near a rollover minute does not
	// wait a full interval.
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rollover sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep processes every minute between the last swept minute and now.
// Covering the gap matters: a tick can land just after a minute
// boundary, and a laptop waking from sleep may have missed hours of
// rollovers that users still expect to have happened.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := s.now()
	current := start.Truncate(time.Minute)

	from := s.lastSwept.Add(time.Minute)
	if s.lastSwept.IsZero() || current.Sub(s.lastSwept) > catchUpLimit {
		from = current
	}

	var listsRolledOver, todosReset int64
	var firstErr error

	for minute := from; !minute.After(current); minute = minute.Add(time.Minute) {
		lists, todos, err := s.sweepMinute(ctx, minute)
		listsRolledOver += lists
		todosReset += todos
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if ctx.Err() != nil {
			return
		}
	}
	s.lastSwept = current

	metrics.RecordSweep(s.now().Sub(start), listsRolledOver, todosReset, firstErr)
	if listsRolledOver > 0 {
		s.logger.Info().
			Int64("lists", listsRolledOver).
			Int64("todos_reset", todosReset).
			Msg("rollover sweep completed")
	}
}

// sweepMinute resets every list whose rollover time matches the given
// minute. A failing list is logged and skipped; one broken list must
// not stall rollover for the rest.
func (s *Sweeper) sweepMinute(ctx context.Context, minute time.Time) (listsRolledOver, todosReset int64, firstErr error) {
	lists, err := s.store.ListsWithRollover(ctx, minute.Hour(), minute.Minute())
	if err != nil {
		s.logger.Error().Err(err).Time("minute", minute).Msg("listing rollover candidates failed")
		return 0, 0, err
	}

	for _, list := range lists {
		count, err := s.store.ResetCompletedTodos(ctx, list.ID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Error().Err(err).Str("list_id", list.ID).Msg("rollover reset failed")
			continue
		}
		if count == 0 {
			// Nothing was completed; subscribers have nothing to redraw.
			continue
		}

		listsRolledOver++
		todosReset += count
		if s.hub != nil {
			s.hub.BroadcastRollover(list.ID, count)
		}
		s.logger.Debug().
			Str("list_id", list.ID).
			Int64("todos_reset", count).
			Msg("list rolled over")
	}
	return listsRolledOver, todosReset, firstErr
}
