// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: postgres)
  - CodeSalt: Secret for vote-code HMAC hashing (required)
  - LedgerURL: Ledger gateway base URL (required)
  - LedgerTimeout: Timeout racing every ledger submit (default: 5s)
  - CredentialTTL: Vote code lifetime after issuance (default: 30m)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	LEDGER_URL     → -ledger-url
	LEDGER_TIMEOUT → -ledger-timeout
	CREDENTIAL_TTL → -credential-ttl
	CODE_SALT      → -code-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or durations
don't parse:

  - DATABASE_URL must be provided
  - LEDGER_URL must be provided
  - CODE_SALT must be provided
  - LEDGER_TIMEOUT / CREDENTIAL_TTL must be positive durations
*/
package cliparse
