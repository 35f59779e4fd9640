// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus counters for the voting core.

# Counters

  - evoting_credentials_issued_total
  - evoting_ballots_cast_total
  - evoting_ledger_failures_total
  - evoting_vote_rejections_total{reason}

ledger_failures_total deserves alerting: every increment is a voter whose
cast was aborted before anything was recorded.

# Endpoint

	mux.Handle("GET /metrics", metrics.Handler())
*/
package metrics
