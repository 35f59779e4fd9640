// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table.

# Routes

	GET  /health     → liveness + ledger connectivity probe
	POST /register   → credential issuance
	POST /vote       → vote casting
	POST /view-vote  → ballot review by code
	GET  /results    → live tallies
	GET  /metrics    → Prometheus metrics
	GET  /           → API banner

Uses Go 1.22+ method-qualified patterns on http.ServeMux. Handlers receive
their collaborators (database, ledger client, config) through NewRouter.
*/
package router
