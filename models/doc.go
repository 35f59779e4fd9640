// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: voter_id, surname
  - CastVoteRequest: voter_id, code, candidate, position
  - ViewVoteRequest: code

# Response Types

Types for JSON responses:

  - RegisterResponse: code, voter
  - CastVoteResponse: empty body on success
  - ViewVoteResponse: ballots
  - ResultsResponse: positions, total_voters, total_votes, turnout_percent
  - HealthResponse: status, ledger
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - RosterEntry: eligible voter (externally administered)
  - Credential: hashed one-time vote code
  - Ballot: one recorded vote for one position
  - CandidateEntry: candidate roster row with insertion order
  - PositionTally / CandidateTally: derived results, never persisted

# Error Taxonomy

VoteError carries a closed ErrorCode enum. Every code maps to exactly one
HTTP status via HTTPStatus():

	NOT_ELIGIBLE        → 403
	INVALID_CREDENTIAL  → 401
	CREDENTIAL_EXPIRED  → 401
	ALREADY_VOTED       → 403
	LEDGER_UNAVAILABLE  → 503
	PERSISTENCE_FAILURE → 500
	VALIDATION_ERROR    → 400
*/
package models
