// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the e-voting API server.

The server issues one-time voting credentials to eligible voters, records
ballots on an external append-only ledger before the local store, and serves
live tallies.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... LEDGER_URL=http://... CODE_SALT=... go run main.go

Or with flags:

	go run main.go -p 4000 -d "postgres://..." -ledger-url "http://..."

A .env file in the working directory is loaded automatically if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - LEDGER_URL (-ledger-url): Ledger gateway base URL
  - CODE_SALT (--code-salt): Secret for vote-code HMAC hashing

Optional settings:

  - PORT (-p): Server port (default: 4000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: postgres)
  - LEDGER_TIMEOUT (-ledger-timeout): Ledger submit timeout (default: 5s)
  - CREDENTIAL_TTL (-credential-ttl): Vote code lifetime (default: 30m)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (register, voting, results, health)
  - ledger: Client for the external ledger gateway
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and the error taxonomy
  - auth: Vote-code generation and verification
  - metrics: Prometheus counters
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
