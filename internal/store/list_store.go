// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daybreak-labs/daybreak/internal/models"
)

// CreateList inserts a list with the default rollover time. When the
// given ID already exists the stored list is returned unchanged, so
// two clients racing to create the same shared list both end up on it.
func (s *SQLiteStore) CreateList(ctx context.Context, id, name string) (*models.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name must not be empty")
	}
	if id == "" {
		id = uuid.New().String()
	}

	existing, err := s.GetList(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	list := &models.List{
		ID:             id,
		Name:           name,
		RolloverHour:   models.DefaultRolloverHour,
		RolloverMinute: models.DefaultRolloverMinute,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lists (id, name, rollover_hour, rollover_minute, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID, list.Name, list.RolloverHour, list.RolloverMinute,
		list.CreatedAt, list.UpdatedAt,
	)
	if err != nil {
		// Lost a create race; the winner's row is the list.
		if isUniqueViolation(err) {
			return s.GetList(ctx, id)
		}
		return nil, fmt.Errorf("creating list: %w", err)
	}
	return list, nil
}

// GetList returns a list without its todos.
func (s *SQLiteStore) GetList(ctx context.Context, id string) (*models.List, error) {
	var list models.List
	err := s.db.GetContext(ctx, &list, `
		SELECT id, name, rollover_hour, rollover_minute, created_at, updated_at
		FROM lists WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting list %s: %w", id, err)
	}
	return &list, nil
}

// GetListWithTodos returns a list with its todos in insertion order.
func (s *SQLiteStore) GetListWithTodos(ctx context.Context, id string) (*models.List, error) {
	list, err := s.GetList(ctx, id)
	if err != nil {
		return nil, err
	}
	todos, err := s.TodosByList(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Todos = todos
	return list, nil
}

// UpdateRollover changes a list's rollover time and returns the
// updated list.
func (s *SQLiteStore) UpdateRollover(ctx context.Context, id string, hour, minute int) (*models.List, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("rollover %02d:%02d out of range", hour, minute)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE lists SET rollover_hour = ?, rollover_minute = ?, updated_at = ?
		WHERE id = ?`,
		hour, minute, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating rollover for list %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return s.GetList(ctx, id)
}

// DeleteList removes a list; the todos cascade via foreign key.
func (s *SQLiteStore) DeleteList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting list %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListsWithRollover returns every list whose rollover time matches the
// given hour and minute exactly. The sweep calls this once per tick.
func (s *SQLiteStore) ListsWithRollover(ctx context.Context, hour, minute int) ([]*models.List, error) {
	lists := []*models.List{}
	err := s.db.SelectContext(ctx, &lists, `
		SELECT id, name, rollover_hour, rollover_minute, created_at, updated_at
		FROM lists
		WHERE rollover_hour = ? AND rollover_minute = ?
		ORDER BY id`, hour, minute)
	if err != nil {
		return nil, fmt.Errorf("listing lists with rollover %02d:%02d: %w", hour, minute, err)
	}
	return lists, nil
}

// isUniqueViolation reports whether the error is a SQLite uniqueness
// constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
