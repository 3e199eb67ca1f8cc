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
	"time"

	"github.com/google/uuid"

	"github.com/daybreak-labs/daybreak/internal/models"
)

// CreateInvite inserts a registration invite. Generates a UUID if ID
// is empty; the token must already be set by the caller.
func (s *SQLiteStore) CreateInvite(ctx context.Context, invite *models.Invite) error {
	if invite.Token == "" {
		return fmt.Errorf("invite token must not be empty")
	}
	if invite.MaxUses < 1 {
		return fmt.Errorf("invite max uses must be at least 1, got %d", invite.MaxUses)
	}
	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	invite.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO invites (id, token, created_by, max_uses, current_uses, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		invite.ID, invite.Token, invite.CreatedBy, invite.MaxUses,
		invite.CurrentUses, invite.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invite token: %w", ErrConflict)
		}
		return fmt.Errorf("creating invite: %w", err)
	}
	return nil
}

// GetInviteByToken returns an invite by its token.
func (s *SQLiteStore) GetInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	err := s.db.GetContext(ctx, &invite, `
		SELECT id, token, created_by, max_uses, current_uses, created_at
		FROM invites WHERE token = ?`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invite: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting invite: %w", err)
	}
	return &invite, nil
}

// ListInvites returns every invite ordered by creation time.
func (s *SQLiteStore) ListInvites(ctx context.Context) ([]*models.Invite, error) {
	invites := []*models.Invite{}
	err := s.db.SelectContext(ctx, &invites, `
		SELECT id, token, created_by, max_uses, current_uses, created_at
		FROM invites ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing invites: %w", err)
	}
	return invites, nil
}

// DeleteInvite removes an invite.
func (s *SQLiteStore) DeleteInvite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM invites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting invite %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("invite %s: %w", id, ErrNotFound)
	}
	return nil
}

// ConsumeInvite increments the invite's use count. The WHERE guard
// keeps the count below the cap even when registrations race.
func (s *SQLiteStore) ConsumeInvite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE invites SET current_uses = current_uses + 1
		WHERE id = ? AND current_uses < max_uses`, id)
	if err != nil {
		return fmt.Errorf("consuming invite %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the invite is gone or its cap is reached.
		var count int
		if err := s.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM invites WHERE id = ?", id); err != nil {
			return fmt.Errorf("checking invite %s: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("invite %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("invite %s: %w", id, ErrInviteExhausted)
	}
	return nil
}
