// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/cliparse"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/handlers"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/ledger"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/metrics"
	"github.com/waletec/Evoting-system-Ethereum-blockchain--sub000/middleware"
)

func NewRouter(db *sql.DB, lc ledger.Client, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, lc, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(lc)

	// Health check (includes a ledger connectivity probe)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Voter operations
	mux.HandleFunc("POST /register", middleware.WithLogging(registerHandler.Register))
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteHandler.CastVote))
	mux.HandleFunc("POST /view-vote", middleware.WithLogging(voteHandler.ViewVote))

	// Live tallies (public)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Prometheus
	mux.Handle("GET /metrics", metrics.Handler())

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("e-voting API v1"))
	})

	return mux
}
