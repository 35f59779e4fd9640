// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CredentialsIssued counts successful vote-code registrations,
	// including re-issues.
	CredentialsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evoting",
		Name:      "credentials_issued_total",
		Help:      "Vote codes issued, including re-issues.",
	})

	// BallotsCast counts ballots accepted end to end (ledger and store).
	BallotsCast = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evoting",
		Name:      "ballots_cast_total",
		Help:      "Ballots recorded in both the ledger and the store.",
	})

	// LedgerFailures counts aborted casts where the ledger write failed or
	// timed out. Every increment is a vote that was NOT recorded anywhere.
	LedgerFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evoting",
		Name:      "ledger_failures_total",
		Help:      "Vote casts aborted because the ledger write failed or timed out.",
	})

	// VoteRejections counts domain rejections by error code.
	VoteRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evoting",
		Name:      "vote_rejections_total",
		Help:      "Vote casts rejected before any write, by reason.",
	}, []string{"reason"})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
