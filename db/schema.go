// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The statements are deliberately restricted to the SQL dialect shared by
// PostgreSQL and SQLite (no SERIAL, no NOW()), so the same schema serves
// the production database and the in-memory test database.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voter roster (managed by the admin flows, read-only here)
CREATE TABLE IF NOT EXISTS voter (
    voter_id TEXT PRIMARY KEY,
    surname TEXT NOT NULL,
    faculty TEXT,
    department TEXT,
    active BOOLEAN NOT NULL DEFAULT TRUE
);

-- Candidate roster (managed by the admin flows, read-only here).
-- seq records insertion order; tallies use it as the tie-break.
CREATE TABLE IF NOT EXISTS candidate (
    name TEXT NOT NULL,
    position TEXT NOT NULL,
    department TEXT,
    seq INTEGER NOT NULL,
    PRIMARY KEY (position, name)
);

CREATE INDEX IF NOT EXISTS idx_candidate_position ON candidate(position);

-- Vote codes. One live credential per voter; re-issuing overwrites.
CREATE TABLE IF NOT EXISTS credential (
    voter_id TEXT PRIMARY KEY REFERENCES voter(voter_id),
    code_hash TEXT NOT NULL,
    issued_at TIMESTAMP NOT NULL,
    consumed BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_credential_code_hash ON credential(code_hash);

-- Ballots. The UNIQUE (voter_id, position) index is the authoritative
-- race-breaker for double voting.
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL,
    candidate_name TEXT NOT NULL,
    position TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL,
    UNIQUE (voter_id, position)
);

CREATE INDEX IF NOT EXISTS idx_ballot_voter_id ON ballot(voter_id);
CREATE INDEX IF NOT EXISTS idx_ballot_position ON ballot(position);
`
