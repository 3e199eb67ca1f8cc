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

// CreateUser inserts a new account. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if strings.TrimSpace(user.Username) == "" {
		return fmt.Errorf("username must not be empty")
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("password hash must not be empty")
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s: %w", user.Username, ErrConflict)
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByID returns a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &user, nil
}

// GetUserByUsername returns a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users WHERE username = ?`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &user, nil
}

// ListUsers returns every account ordered by creation time.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	err := s.db.SelectContext(ctx, &users, `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// SetAdmin grants or revokes the admin flag.
func (s *SQLiteStore) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET is_admin = ? WHERE id = ?", isAdmin, id)
	if err != nil {
		return fmt.Errorf("setting admin flag for user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteUser removes an account.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// AdminExists reports whether any admin account exists.
func (s *SQLiteStore) AdminExists(ctx context.Context) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users WHERE is_admin = 1")
	if err != nil {
		return false, fmt.Errorf("counting admins: %w", err)
	}
	return count > 0, nil
}
