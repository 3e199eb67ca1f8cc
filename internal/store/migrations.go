// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS lists (
	id              TEXT PRIMARY KEY,
	name            TEXT NOT NULL,
	rollover_hour   INTEGER NOT NULL DEFAULT 4,
	rollover_minute INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS todos (
	id               TEXT PRIMARY KEY,
	list_id          TEXT NOT NULL,
	title            TEXT NOT NULL,
	deadline_hour    INTEGER NOT NULL,
	deadline_minute  INTEGER NOT NULL,
	completed        INTEGER NOT NULL DEFAULT 0,
	completed_date   TEXT,
	completed_hour   INTEGER,
	completed_minute INTEGER,
	completed_second INTEGER,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL,
	FOREIGN KEY (list_id) REFERENCES lists(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	is_admin      INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS invites (
	id           TEXT PRIMARY KEY,
	token        TEXT NOT NULL UNIQUE,
	created_by   TEXT NOT NULL,
	max_uses     INTEGER NOT NULL DEFAULT 1,
	current_uses INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (created_by) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_todos_list_id ON todos(list_id);
CREATE INDEX IF NOT EXISTS idx_todos_list_completed ON todos(list_id, completed);
CREATE INDEX IF NOT EXISTS idx_lists_rollover ON lists(rollover_hour, rollover_minute);
CREATE INDEX IF NOT EXISTS idx_invites_token ON invites(token);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
