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

// CreateTodo inserts a new todo. Generates a UUID if ID is empty.
// The parent list must exist; the foreign key enforces it.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, list_id, title, deadline_hour, deadline_minute,
			completed, completed_date, completed_hour, completed_minute, completed_second,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.ListID, todo.Title, todo.DeadlineHour, todo.DeadlineMinute,
		todo.Completed, todo.CompletedDate, todo.CompletedHour, todo.CompletedMin, todo.CompletedSec,
		todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return fmt.Errorf("list %s: %w", todo.ListID, ErrNotFound)
		}
		return fmt.Errorf("creating todo: %w", err)
	}
	return nil
}

// GetTodo returns a todo by ID.
func (s *SQLiteStore) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	err := s.db.GetContext(ctx, &todo, `
		SELECT id, list_id, title, deadline_hour, deadline_minute,
		       completed, completed_date, completed_hour, completed_minute, completed_second,
		       created_at, updated_at
		FROM todos WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo %s: %w", id, err)
	}
	return &todo, nil
}

// UpdateTodo writes the full row in one statement so completion state
// can never be stored half-updated.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	if strings.TrimSpace(todo.Title) == "" {
		return fmt.Errorf("todo title must not be empty")
	}
	todo.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, deadline_hour = ?, deadline_minute = ?,
			completed = ?, completed_date = ?, completed_hour = ?,
			completed_minute = ?, completed_second = ?, updated_at = ?
		WHERE id = ?`,
		todo.Title, todo.DeadlineHour, todo.DeadlineMinute,
		todo.Completed, todo.CompletedDate, todo.CompletedHour,
		todo.CompletedMin, todo.CompletedSec, todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", todo.ID, ErrNotFound)
	}
	return nil
}

// DeleteTodo removes a todo by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// TodosByList returns a list's todos in insertion order.
func (s *SQLiteStore) TodosByList(ctx context.Context, listID string) ([]*models.Todo, error) {
	todos := []*models.Todo{}
	err := s.db.SelectContext(ctx, &todos, `
		SELECT id, list_id, title, deadline_hour, deadline_minute,
		       completed, completed_date, completed_hour, completed_minute, completed_second,
		       created_at, updated_at
		FROM todos WHERE list_id = ?
		ORDER BY created_at, id`, listID)
	if err != nil {
		return nil, fmt.Errorf("listing todos for list %s: %w", listID, err)
	}
	return todos, nil
}

// PendingTodos returns every incomplete todo joined with its list's
// rollover time. The deadline alert engine polls this.
func (s *SQLiteStore) PendingTodos(ctx context.Context) ([]*models.PendingTodo, error) {
	todos := []*models.PendingTodo{}
	err := s.db.SelectContext(ctx, &todos, `
		SELECT t.id, t.list_id, t.title, t.deadline_hour, t.deadline_minute,
		       t.completed, t.completed_date, t.completed_hour, t.completed_minute, t.completed_second,
		       t.created_at, t.updated_at,
		       l.rollover_hour, l.rollover_minute
		FROM todos t
		JOIN lists l ON l.id = t.list_id
		WHERE t.completed = 0
		ORDER BY t.list_id, t.created_at, t.id`)
	if err != nil {
		return nil, fmt.Errorf("listing pending todos: %w", err)
	}
	return todos, nil
}

// ResetCompletedTodos clears completion state for every completed todo
// of a list in a single UPDATE. The returned count is zero when the
// list was already clean, which callers use to suppress redundant
// rollover broadcasts.
func (s *SQLiteStore) ResetCompletedTodos(ctx context.Context, listID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			completed = 0,
			completed_date = NULL,
			completed_hour = NULL,
			completed_minute = NULL,
			completed_second = NULL,
			updated_at = ?
		WHERE list_id = ? AND completed = 1`,
		time.Now().UTC(), listID,
	)
	if err != nil {
		return 0, fmt.Errorf("resetting todos for list %s: %w", listID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting reset todos for list %s: %w", listID, err)
	}
	return rows, nil
}
