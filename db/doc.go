// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL sticks to the dialect shared by PostgreSQL and SQLite so the same
schema serves both drivers.

# Tables

The schema includes:

  - voter: Eligible voter roster (externally administered)
  - candidate: Candidate roster with insertion order (externally administered)
  - credential: One live hashed vote code per voter
  - ballot: One ballot per voter per position

# Relationships

	voter 1──1 credential
	voter 1──* ballot

The roster tables have no incoming foreign keys from the core; the tally
joins ballots to candidates by name.

# Indexes

  - ballot UNIQUE (voter_id, position) — the authoritative double-vote breaker
  - credential.code_hash — ballot review lookups
  - candidate.position, ballot.voter_id, ballot.position
*/
package db
