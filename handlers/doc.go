// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the e-voting API.

# Handler Types

Each handler is a struct with its collaborators injected at construction:

  - RegisterHandler: Credential issuance for eligible voters
  - VoteHandler: Vote casting and ballot review
  - ResultsHandler: Live tally computation
  - HealthHandler: Liveness and ledger connectivity probe

	registerHandler := handlers.NewRegisterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, ledgerClient, cfg)

# Registration Flow

	POST /register → Register (returns the one-time vote code)

Eligibility requires an active roster entry with a case-insensitively
matching surname. Re-registering overwrites the previous credential and
permanently invalidates its code.

# Casting Flow

	POST /vote      → CastVote
	POST /view-vote → ViewVote (ballot review by code)

CastVote walks Validating → LedgerWrite → StoreWrite → Completed. The
ledger write gates the store write: a ballot row is only ever created after
the ledger accepted the vote. The UNIQUE (voter_id, position) index
converts a lost race into ALREADY_VOTED.

# Tallying

	GET /results → GetResults

Results are recomputed from the ballot log on every request in tally.go:
zero-seeded candidates, votes-descending order with roster insertion order
as the tie-break, one-decimal percentages, turnout over the active roster.
*/
package handlers
